package gen

import (
	"strings"
)

// propagate splits annotation blocks into the lines placed above a
// generated item. Blocks are copied in order without validation; only
// surrounding blank lines and the indentation shared by a block are
// removed.
func propagate(blocks []string) []string {
	var lines []string

	for _, block := range blocks {
		lines = append(lines, dedent(block)...)
	}

	return lines
}

func dedent(block string) []string {
	raw := strings.Split(strings.ReplaceAll(block, "\r\n", "\n"), "\n")

	for len(raw) > 0 && strings.TrimSpace(raw[0]) == "" {
		raw = raw[1:]
	}

	for len(raw) > 0 && strings.TrimSpace(raw[len(raw)-1]) == "" {
		raw = raw[:len(raw)-1]
	}

	indent := -1

	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}

		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	out := make([]string, 0, len(raw))
	for _, line := range raw {
		if len(line) >= indent && indent > 0 {
			line = line[indent:]
		}

		out = append(out, strings.TrimRight(line, " \t"))
	}

	return out
}
