package cliutil

import (
	"strings"
)

// Wrap wraps the string `s` to a maximum width `w`.  Pass `w` == 0 to do no wrapping.
//
// In order to have some room for slop to avoid things like a short word being on a line by itself,
// most lines are actually wrapped to `w - 5`.
func Wrap(w int, s string) string {
	return wrap(0, w, s)
}

// WrapIndent wraps the string `s` to a maximum width `w` with leading indent `i`.  The first line
// is not indented (this is assumed to be done by the caller).  Pass `w` == 0 to do no wrapping.
//
// In order to have some room for slop to avoid things like a short word being on a line by itself,
// most lines are actually wrapped to `w - 5`.
func WrapIndent(i, w int, s string) string {
	return wrap(i, w, s)
}

func wrap(indent, width int, s string) string {
	limit := width - 5
	if width == 0 || limit <= indent {
		return s
	}
	prefix := strings.Repeat(" ", indent)

	var out strings.Builder
	for lineNum, line := range strings.Split(s, "\n") {
		if lineNum > 0 {
			out.WriteString("\n")
			if line != "" {
				out.WriteString(prefix)
			}
		}

		// `col` counts from the start of the terminal row, so it starts at `indent` even
		// though the indentation itself isn't emitted for the first row.
		col := indent
		firstWord := true
		pos := 0
		for pos < len(line) {
			sepStart := pos
			for pos < len(line) && line[pos] == ' ' {
				pos++
			}
			sep := line[sepStart:pos]
			wordStart := pos
			for pos < len(line) && line[pos] != ' ' {
				pos++
			}
			word := line[wordStart:pos]

			switch {
			case word == "":
				// trailing spaces
				out.WriteString(sep)
			case firstWord:
				out.WriteString(sep)
				out.WriteString(word)
				col += len(sep) + len(word)
				firstWord = false
			case col+len(sep)+len(word) <= limit:
				out.WriteString(sep)
				out.WriteString(word)
				col += len(sep) + len(word)
			default:
				out.WriteString("\n")
				out.WriteString(prefix)
				out.WriteString(word)
				col = indent + len(word)
			}
		}
	}
	return out.String()
}
