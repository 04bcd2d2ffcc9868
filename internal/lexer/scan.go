package lexer

import "strings"

// Positional classifiers over a raw input buffer. Each takes the full
// buffer and a byte position and never mutates or panics; positions
// outside the buffer simply classify as false. Region context (whether
// the position is already inside a string or comment) is tracked by the
// callers, which only consult these predicates from outside any region.

// escapeChar is the line-continuation and string escape character.
const escapeChar = '\\'

// isSpace reports whether c is an ASCII whitespace byte.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// isEscaped reports whether the character at pos is preceded by an odd
// run of escape characters. The run itself must not be escaped, which
// the odd/even count captures. Only single-quoted string scanning uses
// this; identifier quotes escape by doubling instead.
func isEscaped(buf string, pos int) bool {
	if pos <= 0 || pos > len(buf) {
		return false
	}
	n := 0
	for i := pos - 1; i >= 0 && buf[i] == escapeChar; i-- {
		n++
	}
	return n%2 == 1
}

// isQuoteChar reports whether buf[pos] opens a quoted region under the
// given convention: a single quote or the convention's open quote.
func isQuoteChar(buf string, pos int, q Quoting) bool {
	if pos < 0 || pos >= len(buf) {
		return false
	}
	return buf[pos] == '\'' || buf[pos] == q.Start
}

// oneLineCommentLen returns the length of the dialect line-comment
// opener at pos, or 0 when none opens there.
func oneLineCommentLen(buf string, pos int, q Quoting) int {
	if pos < 0 || pos >= len(buf) {
		return 0
	}
	for _, open := range q.lineComments() {
		if strings.HasPrefix(buf[pos:], open) {
			return len(open)
		}
	}
	return 0
}

// isOneLineComment reports whether a dialect line comment opens at pos.
func isOneLineComment(buf string, pos int, q Quoting) bool {
	return oneLineCommentLen(buf, pos, q) > 0
}

// isMultilineComment reports whether a "/*" block comment opens at pos.
func isMultilineComment(buf string, pos int) bool {
	return pos >= 0 && pos+1 < len(buf) && buf[pos] == '/' && buf[pos+1] == '*'
}

// endsWithEscape reports whether the buffer ends in a lone escape
// character, i.e. an odd run of trailing escape characters. This is the
// explicit line-continuation request.
func endsWithEscape(buf string) bool {
	if len(buf) == 0 || buf[len(buf)-1] != escapeChar {
		return false
	}
	return isEscaped(buf, len(buf))
}
