package lexer

import (
	"fmt"
	"strings"
)

// Token is one delimiter-separated word of a line. Value has one layer
// of surrounding quotes removed; Start and End are the byte offsets of
// the raw token in the original line, needed for cursor-relative
// completion.
type Token struct {
	Value  string
	Quoted bool
	Start  int
	End    int
}

// Split splits a single line into tokens on delim (a single space when
// empty), treating quoted runs as atomic. Delimiters inside a quoted run
// are not split points.
//
// limit > 0 caps the number of split-off tokens: after limit tokens the
// rest of the line is returned un-tokenized as one final token, so a
// command like "run <filename with spaces>" receives the full remaining
// text as a single argument. limit 0 means unlimited.
//
// A delimiter containing a quote character is a contract violation and
// returns ErrUnsupportedConfiguration. An unterminated quote returns
// ErrMalformedQuoting; interactive input reaching this function has
// already been screened by DetectBoundary.
func Split(line, delim string, limit int) ([]Token, error) {
	if delim == "" {
		delim = " "
	}
	if strings.ContainsAny(delim, `'"`) {
		return nil, fmt.Errorf("%w: delimiter %q contains a quote character",
			ErrUnsupportedConfiguration, delim)
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: negative token limit %d",
			ErrUnsupportedConfiguration, limit)
	}

	var tokens []Token
	i, n := 0, len(line)
	for i < n {
		if strings.HasPrefix(line[i:], delim) {
			i += len(delim)
			continue
		}
		if limit > 0 && len(tokens) == limit {
			tokens = append(tokens, restToken(line, i))
			break
		}

		start := i
		quoted := false
		var quote byte
		for i < n {
			c := line[i]
			if quote != 0 {
				if c == quote {
					quote = 0
				}
				i++
				continue
			}
			if c == '\'' || c == '"' {
				quote = c
				quoted = true
				i++
				continue
			}
			if strings.HasPrefix(line[i:], delim) {
				break
			}
			i++
		}
		if quote != 0 {
			return nil, fmt.Errorf("%w: unterminated %s quote in %q",
				ErrMalformedQuoting, string(quote), line)
		}
		value, err := Dequote(line[start:i])
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, Token{Value: value, Quoted: quoted, Start: start, End: i})
	}
	return tokens, nil
}

// restToken wraps the untokenized remainder of the line as the final
// token. A remainder cleanly wrapped in one quote pair is dequoted; a
// stray quote somewhere inside it is kept verbatim since the remainder
// is by definition un-tokenized.
func restToken(line string, start int) Token {
	raw := strings.TrimRight(line[start:], " \t")
	end := start + len(raw)
	quoted := false
	if len(raw) >= 2 && (raw[0] == '\'' || raw[0] == '"') && raw[len(raw)-1] == raw[0] {
		raw = raw[1 : len(raw)-1]
		quoted = true
	}
	return Token{Value: raw, Quoted: quoted, Start: start, End: end}
}

// SplitWords splits a line on spaces with no limit and returns just the
// token values.
func SplitWords(line string) ([]string, error) {
	tokens, err := Split(line, " ", 0)
	if err != nil {
		return nil, err
	}
	values := make([]string, len(tokens))
	for i, t := range tokens {
		values[i] = t.Value
	}
	return values, nil
}
