package dsl

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	triviaToken = iota
	identifierToken
	spreadToken
	dotToken
	commaToken
	colonToken
	atToken
	lbraceToken
	rbraceToken
	lparenToken
	rparenToken
	lbracketToken
	rbracketToken
	stringToken
	rawStringToken
	typeExprToken
	guardExprToken
)

var triviaMatcher = parsly.NewToken(triviaToken, "Whitespace", &triviaMatch{})
var identifierMatcher = parsly.NewToken(identifierToken, "Identifier", &identifierMatch{})
var spreadMatcher = parsly.NewToken(spreadToken, "..", matcher.NewFragment(".."))
var dotMatcher = parsly.NewToken(dotToken, ".", matcher.NewByte('.'))
var commaMatcher = parsly.NewToken(commaToken, ",", matcher.NewByte(','))
var colonMatcher = parsly.NewToken(colonToken, ":", matcher.NewByte(':'))
var atMatcher = parsly.NewToken(atToken, "@", matcher.NewByte('@'))
var lbraceMatcher = parsly.NewToken(lbraceToken, "{", matcher.NewByte('{'))
var rbraceMatcher = parsly.NewToken(rbraceToken, "}", matcher.NewByte('}'))
var lparenMatcher = parsly.NewToken(lparenToken, "(", matcher.NewByte('('))
var rparenMatcher = parsly.NewToken(rparenToken, ")", matcher.NewByte(')'))
var lbracketMatcher = parsly.NewToken(lbracketToken, "[", matcher.NewByte('['))
var rbracketMatcher = parsly.NewToken(rbracketToken, "]", matcher.NewByte(']'))
var stringMatcher = parsly.NewToken(stringToken, "String", matcher.NewBlock('"', '"', '\\'))
var rawStringMatcher = parsly.NewToken(rawStringToken, "RawString", &rawStringMatch{})
var typeExprMatcher = parsly.NewToken(typeExprToken, "Type", &exprMatch{stopAtIf: true})
var guardExprMatcher = parsly.NewToken(guardExprToken, "Guard", &exprMatch{})

// triviaMatch consumes whitespace, line comments and block comments.
type triviaMatch struct{}

func (t *triviaMatch) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos

	for pos < cursor.InputSize {
		switch {
		case isSpace(input[pos]):
			pos++
		case hasPrefixAt(input, pos, "//"):
			for pos < cursor.InputSize && input[pos] != '\n' {
				pos++
			}
		case hasPrefixAt(input, pos, "/*"):
			end := indexAt(input, pos+2, "*/")
			if end < 0 {
				return cursor.InputSize - cursor.Pos
			}

			pos = end + 2
		default:
			return pos - cursor.Pos
		}
	}

	return pos - cursor.Pos
}

type identifierMatch struct{}

func (i *identifierMatch) Match(cursor *parsly.Cursor) int {
	if cursor.Pos >= cursor.InputSize {
		return 0
	}

	if !isIdentifierStart(cursor.Input[cursor.Pos]) {
		return 0
	}

	pos := cursor.Pos + 1
	for pos < cursor.InputSize && isIdentifierPart(cursor.Input[pos]) {
		pos++
	}

	return pos - cursor.Pos
}

type rawStringMatch struct{}

func (r *rawStringMatch) Match(cursor *parsly.Cursor) int {
	if cursor.Pos >= cursor.InputSize || cursor.Input[cursor.Pos] != '`' {
		return 0
	}

	for pos := cursor.Pos + 1; pos < cursor.InputSize; pos++ {
		if cursor.Input[pos] == '`' {
			return pos + 1 - cursor.Pos
		}
	}

	return 0
}

// exprMatch consumes Go expression text up to the first top-level ',' or
// closing bracket. With stopAtIf it also stops before a top-level "if"
// keyword, which ends a type annotation.
type exprMatch struct {
	stopAtIf bool
}

func (e *exprMatch) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	depth := 0
	last := pos

	for pos < cursor.InputSize {
		b := input[pos]

		switch {
		case b == '"' || b == '\'':
			end := skipQuoted(input, pos, b)
			if end < 0 {
				return 0
			}

			pos = end
			last = pos

			continue
		case b == '`':
			end := indexAt(input, pos+1, "`")
			if end < 0 {
				return 0
			}

			pos = end + 1
			last = pos

			continue
		case hasPrefixAt(input, pos, "//"), hasPrefixAt(input, pos, "/*"):
			if depth == 0 {
				return last - cursor.Pos
			}
		case b == '(' || b == '[' || b == '{':
			depth++
		case b == ')' || b == ']' || b == '}':
			if depth == 0 {
				return last - cursor.Pos
			}

			depth--
		case b == ',' && depth == 0:
			return last - cursor.Pos
		case isIdentifierStart(b):
			end := pos + 1
			for end < cursor.InputSize && isIdentifierPart(input[end]) {
				end++
			}

			if e.stopAtIf && depth == 0 && string(input[pos:end]) == "if" {
				return last - cursor.Pos
			}

			pos = end
			last = pos

			continue
		}

		pos++

		if !isSpace(b) {
			last = pos
		}
	}

	return last - cursor.Pos
}

func skipQuoted(input []byte, pos int, quote byte) int {
	for i := pos + 1; i < len(input); i++ {
		switch input[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		case '\n':
			return -1
		}
	}

	return -1
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isIdentifierStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isIdentifierPart(b byte) bool {
	return isIdentifierStart(b) || (b >= '0' && b <= '9')
}

func hasPrefixAt(input []byte, pos int, prefix string) bool {
	return pos+len(prefix) <= len(input) && string(input[pos:pos+len(prefix)]) == prefix
}

func indexAt(input []byte, pos int, needle string) int {
	for i := pos; i+len(needle) <= len(input); i++ {
		if string(input[i:i+len(needle)]) == needle {
			return i
		}
	}

	return -1
}
