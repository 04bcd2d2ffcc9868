package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/sqlsh/internal/lexer"
)

func TestFor_Builtins(t *testing.T) {
	assert.Equal(t, byte('`'), For("mysql").Quoting.Start)
	assert.Equal(t, byte('['), For("sqlserver").Quoting.Start)
	assert.Equal(t, byte(']'), For("sqlserver").Quoting.End)
	assert.True(t, For("ansi").Quoting.Upper)
	assert.False(t, For("postgres").Quoting.Upper, "postgres stores unquoted identifiers lower-cased")
	assert.False(t, For("sqlite").Quoting.Upper)
	assert.Equal(t, []string{"--", "#"}, For("mysql").Quoting.LineComments)
	assert.Empty(t, For("postgres").Quoting.LineComments)
}

func TestFor_UnknownFallsBackToANSI(t *testing.T) {
	d := For("no-such-driver")
	assert.Equal(t, "ansi", d.Name)
	assert.Equal(t, lexer.DefaultQuoting, d.Quoting)
}

func TestRegisterAndList(t *testing.T) {
	Register(Dialect{Name: "testdb", Quoting: lexer.Quoting{Start: '|', End: '|'}})
	assert.Equal(t, byte('|'), For("testdb").Quoting.Start)
	assert.Contains(t, List(), "testdb")
	assert.Contains(t, List(), "ansi")
}
