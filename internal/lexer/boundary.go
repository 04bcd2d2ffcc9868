// Package lexer implements the character-level lexical core of the
// shell: statement boundary detection for the multi-line prompt, line
// tokenization, and compound identifier splitting, all honoring SQL
// quoting and comment conventions.
//
// Every function here is a pure function of its inputs. The detector in
// particular is recomputed from the full accumulated buffer on every
// call, so the read loop can invoke it once per line (or once per
// keystroke) without any risk of desynchronized state.
package lexer

import "strings"

// ScanState is the lexer's mode at the end of a boundary scan. Anything
// other than Ready means the buffer must be extended with another line.
type ScanState int

const (
	// Ready means the buffer is a complete unit and can be dispatched.
	Ready ScanState = iota
	// AwaitingSemicolon means statement content is present but the
	// terminating semicolon has not been seen.
	AwaitingSemicolon
	// InSingleQuote means the scan ended inside a '...' string literal.
	InSingleQuote
	// InDoubleQuote means the scan ended inside a quoted identifier
	// (ANSI double quote by default; backtick or bracket per the
	// connection's convention).
	InDoubleQuote
	// InBlockComment means the scan ended inside an unclosed /* comment.
	InBlockComment
	// EscapedNewline means the buffer ends in a lone escape character,
	// an explicit request for a literal line continuation.
	EscapedNewline
)

// String returns the state name for logs and test failures.
func (s ScanState) String() string {
	switch s {
	case Ready:
		return "Ready"
	case AwaitingSemicolon:
		return "AwaitingSemicolon"
	case InSingleQuote:
		return "InSingleQuote"
	case InDoubleQuote:
		return "InDoubleQuote"
	case InBlockComment:
		return "InBlockComment"
	case EscapedNewline:
		return "EscapedNewline"
	default:
		return "ScanState(?)"
	}
}

// Continuation tags identify which continuation prompt the read loop
// should render. For non-default identifier quote conventions the tag
// is the literal quote character still owed to close the region.
const (
	TagQuote     = "quote"
	TagDQuote    = "dquote"
	TagComment   = "*/"
	TagSemicolon = "semicolon"
	TagNewline   = "newline"
)

// CommandPrefix introduces administrative shell commands. Command lines
// never require continuation.
const CommandPrefix = "!"

// Result is the outcome of a boundary scan. Tag is empty iff the state
// is Ready.
type Result struct {
	State ScanState
	Tag   string
}

// Complete reports whether the buffer can be dispatched as-is.
func (r Result) Complete() bool { return r.State == Ready }

// DetectBoundary decides whether the accumulated buffer is a complete
// input unit. statementMode selects statement rules (semicolon
// termination required); shell-command lines pass false. The scan is a
// single left-to-right pass and never fails: malformed input is exactly
// the signal that more input is required.
func DetectBoundary(buffer string, statementMode bool, q Quoting) Result {
	trimmed := strings.TrimSpace(buffer)
	if trimmed == "" || IsHelpRequest(trimmed) {
		return Result{State: Ready}
	}
	// Shell-style comment lines and administrative commands are complete
	// as typed. !sql and !all carry statements and fall through to the
	// statement rules.
	if strings.HasPrefix(trimmed, "#") {
		return Result{State: Ready}
	}
	if strings.HasPrefix(trimmed, CommandPrefix) && !isStatementCommand(trimmed) {
		return Result{State: Ready}
	}

	const (
		outside = iota
		inSingle
		inIdent
		inLineComment
		inBlockComment
	)
	region := outside

	// Last character seen outside any comment; the semicolon check must
	// ignore semicolons shadowed by a trailing comment.
	var lastContent byte
	hasContent := false

	for i := 0; i < len(buffer); i++ {
		c := buffer[i]
		switch region {
		case outside:
			switch {
			case isQuoteChar(buffer, i, q):
				hasContent, lastContent = true, c
				switch {
				case c == '\'' && !isEscaped(buffer, i):
					region = inSingle
				case c == q.Start:
					region = inIdent
				}
			case isOneLineComment(buffer, i, q):
				region = inLineComment
				i += oneLineCommentLen(buffer, i, q) - 1
			case isMultilineComment(buffer, i):
				region = inBlockComment
				i++
			default:
				if !isSpace(c) {
					hasContent, lastContent = true, c
				}
			}
		case inSingle:
			lastContent = c
			if c == '\'' && !isEscaped(buffer, i) {
				if i+1 < len(buffer) && buffer[i+1] == '\'' {
					// Doubled quote is an embedded literal; skip the
					// second one so it is not re-tested as an opener.
					i++
				} else {
					region = outside
				}
			}
		case inIdent:
			lastContent = c
			if c == q.End {
				if i+1 < len(buffer) && buffer[i+1] == q.End {
					i++
				} else {
					region = outside
				}
			}
		case inLineComment:
			if c == '\n' || c == '\r' {
				region = outside
			}
		case inBlockComment:
			if c == '*' && i+1 < len(buffer) && buffer[i+1] == '/' {
				region = outside
				i++
			}
		}
	}

	switch region {
	case inSingle:
		return Result{State: InSingleQuote, Tag: TagQuote}
	case inIdent:
		return Result{State: InDoubleQuote, Tag: identTag(q)}
	case inBlockComment:
		return Result{State: InBlockComment, Tag: TagComment}
	}

	// A trailing lone escape outside any quote requests a literal line
	// continuation. Inside a quote the quote state already won above: a
	// backslash in a string is string content, not a continuation.
	if region == outside && endsWithEscape(buffer) {
		return Result{State: EscapedNewline, Tag: TagNewline}
	}

	if statementMode && hasContent && lastContent != ';' {
		return Result{State: AwaitingSemicolon, Tag: TagSemicolon}
	}
	return Result{State: Ready}
}

// identTag returns the continuation tag for an unclosed identifier
// quote: "dquote" for the ANSI double quote, otherwise the literal
// quote character. Asymmetric pairs use the close character, so the
// bracket convention prompts with "]>".
func identTag(q Quoting) string {
	switch {
	case q.Start == '"':
		return TagDQuote
	case q.Start != q.End:
		return string(q.End)
	default:
		return string(q.Start)
	}
}

// IsHelpRequest reports whether the line is a bare help request.
func IsHelpRequest(line string) bool {
	return line == "?" || strings.EqualFold(line, "help")
}

// IsComment reports whether the line is a comment line: SQL92 "--" or
// shell-style "#".
func IsComment(line string) bool {
	return strings.HasPrefix(line, "#") || strings.HasPrefix(line, "--")
}

// isStatementCommand reports whether a command-prefixed line carries a
// statement and therefore still follows statement continuation rules.
func isStatementCommand(line string) bool {
	rest := line[len(CommandPrefix):]
	return hasWordPrefixFold(rest, "sql") || hasWordPrefixFold(rest, "all")
}

// hasWordPrefixFold reports whether s begins with the given word,
// case-insensitively, followed by a word boundary.
func hasWordPrefixFold(s, word string) bool {
	if len(s) < len(word) || !strings.EqualFold(s[:len(word)], word) {
		return false
	}
	return len(s) == len(word) || isSpace(s[len(word)])
}
