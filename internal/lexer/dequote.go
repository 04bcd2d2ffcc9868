package lexer

import "fmt"

// Dequote strips at most one matching layer of surrounding single or
// double quotes from token. A token that opens with a quote must close
// with the same quote; anything else is malformed rather than silently
// stripped on one side. Tokens that do not open with a quote pass
// through unchanged.
func Dequote(token string) (string, error) {
	if token == "" {
		return token, nil
	}
	first := token[0]
	if first != '\'' && first != '"' {
		return token, nil
	}
	if len(token) < 2 || token[len(token)-1] != first {
		return "", fmt.Errorf("%w: unmatched %s quote in %q",
			ErrMalformedQuoting, string(first), token)
	}
	return token[1 : len(token)-1], nil
}
