package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCompound_QuotedParts(t *testing.T) {
	c := SplitCompound(`describe "My Schema"."My Table"`, DefaultQuoting)
	assert.Equal(t, "describe", c.Command)
	require.Len(t, c.Parts, 2)
	assert.Equal(t, Part{Value: "My Schema", Valid: true}, c.Parts[0])
	assert.Equal(t, Part{Value: "My Table", Valid: true}, c.Parts[1])
}

func TestSplitCompound_UnquotedFolding(t *testing.T) {
	c := SplitCompound("columns myschema.mytable", DefaultQuoting)
	assert.Equal(t, "columns", c.Command)
	assert.Equal(t, []string{"MYSCHEMA", "MYTABLE"}, c.Values())

	noFold := Quoting{Start: '`', End: '`', Upper: false}
	c = SplitCompound("columns myschema.mytable", noFold)
	assert.Equal(t, []string{"myschema", "mytable"}, c.Values())
}

func TestSplitCompound_QuotedPartsAreNeverFolded(t *testing.T) {
	c := SplitCompound(`columns "lower".upper`, DefaultQuoting)
	require.Len(t, c.Parts, 2)
	assert.Equal(t, "lower", c.Parts[0].Value)
	assert.Equal(t, "UPPER", c.Parts[1].Value)
}

func TestSplitCompound_NullSentinel(t *testing.T) {
	c := SplitCompound("columns t.NULL", DefaultQuoting)
	require.Len(t, c.Parts, 2)
	assert.Equal(t, Part{Value: "T", Valid: true}, c.Parts[0])
	assert.False(t, c.Parts[1].Valid, "literal NULL must become the absent-part marker")
	assert.Empty(t, c.Parts[1].Value)

	// Case-insensitive, but only when unquoted.
	c = SplitCompound(`columns null."NULL"`, DefaultQuoting)
	require.Len(t, c.Parts, 2)
	assert.False(t, c.Parts[0].Valid)
	assert.Equal(t, Part{Value: "NULL", Valid: true}, c.Parts[1])
}

func TestSplitCompound_DoubledQuoteIsLiteral(t *testing.T) {
	c := SplitCompound(`tables "a""b"`, DefaultQuoting)
	require.Len(t, c.Parts, 1)
	assert.Equal(t, `a"b`, c.Parts[0].Value)
}

func TestSplitCompound_TrailingSemicolonAndWhitespace(t *testing.T) {
	c := SplitCompound("tables foo;  ", DefaultQuoting)
	assert.Equal(t, "tables", c.Command)
	assert.Equal(t, []string{"FOO"}, c.Values())
}

func TestSplitCompound_LenientUnterminatedQuote(t *testing.T) {
	// A missing closing quote still emits the partial part, so the line
	// stays usable for completion and preview.
	c := SplitCompound(`tables "My Sch`, DefaultQuoting)
	require.Len(t, c.Parts, 1)
	assert.Equal(t, "My Sch", c.Parts[0].Value)
}

func TestSplitCompound_CommandOnly(t *testing.T) {
	c := SplitCompound("tables", DefaultQuoting)
	assert.Equal(t, "tables", c.Command)
	assert.Empty(t, c.Parts)

	c = SplitCompound("", DefaultQuoting)
	assert.Empty(t, c.Command)
	assert.Empty(t, c.Parts)
}

func TestSplitCompound_BracketConvention(t *testing.T) {
	brackets := Quoting{Start: '[', End: ']', Upper: false}
	c := SplitCompound("columns [My Schema].[My Table]", brackets)
	assert.Equal(t, []string{"My Schema", "My Table"}, c.Values())
}

func TestSplitCompound_ThreePartName(t *testing.T) {
	c := SplitCompound("indexes cat.sch.tbl;", DefaultQuoting)
	assert.Equal(t, "indexes", c.Command)
	assert.Equal(t, []string{"CAT", "SCH", "TBL"}, c.Values())
}
