package lexer

import "errors"

// Sentinel errors returned by the lexer. Callers match them with errors.Is.
var (
	// ErrMalformedQuoting reports a token or identifier with an unmatched
	// or improperly paired quote on input the caller asserted was complete.
	ErrMalformedQuoting = errors.New("malformed quoting")

	// ErrUnsupportedConfiguration reports a contract violation by the
	// caller, such as a delimiter that contains a quote character.
	ErrUnsupportedConfiguration = errors.New("unsupported configuration")
)
