package common

import (
	"path"
	"strconv"
	"strings"
	"unicode"
)

// AssumedName returns the package name an import path is expected to
// declare: the last path element with a major-version element ("/v2") or
// gopkg.in suffix (".v3") skipped and a "go-" prefix removed. Returns the
// empty string for an empty path.
func AssumedName(importPath string) string {
	if importPath == "" {
		return ""
	}

	base := path.Base(importPath)
	if isMajorVersion(base) {
		if dir := path.Dir(importPath); dir != "." {
			base = path.Base(dir)
		}
	}

	base = strings.TrimPrefix(base, "go-")

	if i := strings.IndexFunc(base, notIdentifier); i >= 0 {
		base = base[:i]
	}

	return base
}

// NeedsAlias reports whether importing importPath as name requires an
// explicit import name.
func NeedsAlias(name, importPath string) bool {
	return name != AssumedName(importPath)
}

func isMajorVersion(elem string) bool {
	if len(elem) < 2 || elem[0] != 'v' {
		return false
	}

	_, err := strconv.Atoi(elem[1:])

	return err == nil
}

func notIdentifier(r rune) bool {
	return !(r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r))
}
