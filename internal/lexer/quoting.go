package lexer

import "fmt"

// Quoting describes how the active connection quotes SQL identifiers.
// It is read-only configuration borrowed for the duration of one call;
// the lexer never mutates it.
type Quoting struct {
	// Start and End are the identifier quote characters. They are equal
	// for most databases (`"` on ANSI, "`" on MySQL) but differ on
	// SQL Server, which uses square brackets.
	Start byte
	End   byte

	// Upper folds unquoted identifiers to upper case, the standard SQL
	// behavior. Quoted identifiers are never folded.
	Upper bool

	// LineComments are the one-line comment openers the connection's
	// dialect recognizes mid-statement. Empty means the SQL92 "--"
	// only; mysql-family dialects add "#".
	LineComments []string
}

var sql92LineComments = []string{"--"}

// lineComments returns the effective comment openers, applying the
// SQL92 default when none are configured.
func (q Quoting) lineComments() []string {
	if len(q.LineComments) == 0 {
		return sql92LineComments
	}
	return q.LineComments
}

// DefaultQuoting is the convention used when no connection is active:
// ANSI double quotes with upper-case folding.
var DefaultQuoting = Quoting{Start: '"', End: '"', Upper: true}

// NewQuoting builds a Quoting from configuration strings. Each quote
// string must be exactly one character.
func NewQuoting(start, end string, upper bool) (Quoting, error) {
	if len(start) != 1 || len(end) != 1 {
		return Quoting{}, fmt.Errorf("%w: quote characters must be a single character, got %q and %q",
			ErrUnsupportedConfiguration, start, end)
	}
	return Quoting{Start: start[0], End: end[0], Upper: upper}, nil
}
