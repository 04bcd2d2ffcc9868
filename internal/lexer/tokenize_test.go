package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Value
	}
	return out
}

func TestSplit_Words(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"tables", []string{"tables"}},
		{"connect mydb.sqlite sqlite", []string{"connect", "mydb.sqlite", "sqlite"}},
		{"say 'hello world' now", []string{"say", "hello world", "now"}},
		{`connect "my db.sqlite" sqlite`, []string{"connect", "my db.sqlite", "sqlite"}},
		{"a     b", []string{"a", "b"}},
	}
	for _, tt := range tests {
		got, err := SplitWords(tt.line)
		require.NoError(t, err, "line %q", tt.line)
		assert.Equal(t, tt.want, got, "line %q", tt.line)
	}
}

func TestSplit_EmptyLine(t *testing.T) {
	tokens, err := Split("", " ", 0)
	require.NoError(t, err)
	assert.Empty(t, tokens)

	words, err := SplitWords("   ")
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestSplit_CustomDelimiter(t *testing.T) {
	tokens, err := Split("a,b,'c,d'", ",", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c,d"}, values(tokens))
}

func TestSplit_QuotedFlagAndOffsets(t *testing.T) {
	tokens, err := Split(`ab 'c d'`, " ", 0)
	require.NoError(t, err)
	require.Len(t, tokens, 2)

	assert.Equal(t, Token{Value: "ab", Quoted: false, Start: 0, End: 2}, tokens[0])
	assert.Equal(t, Token{Value: "c d", Quoted: true, Start: 3, End: 8}, tokens[1])
}

func TestSplit_LimitKeepsRemainder(t *testing.T) {
	// The token after the limit is the raw rest of the line, so a
	// filename with spaces survives as one argument.
	tokens, err := Split("run my script with spaces.sql", " ", 1)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "run", tokens[0].Value)
	assert.Equal(t, "my script with spaces.sql", tokens[1].Value)

	tokens, err = Split(`run "my script.sql"`, " ", 1)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "my script.sql", tokens[1].Value)
	assert.True(t, tokens[1].Quoted)

	// Limit larger than the token count changes nothing.
	tokens, err = Split("a b", " ", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, values(tokens))
}

func TestSplit_DelimiterInsideQuotesIsNotASplitPoint(t *testing.T) {
	tokens, err := Split("set prompt 'db> '", " ", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"set", "prompt", "db> "}, values(tokens))
}

func TestSplit_Errors(t *testing.T) {
	_, err := Split("a b", "'", 0)
	assert.ErrorIs(t, err, ErrUnsupportedConfiguration)

	_, err = Split("a b", `x"y`, 0)
	assert.ErrorIs(t, err, ErrUnsupportedConfiguration)

	_, err = Split("a b", " ", -1)
	assert.ErrorIs(t, err, ErrUnsupportedConfiguration)

	_, err = Split("run 'unterminated", " ", 0)
	assert.ErrorIs(t, err, ErrMalformedQuoting)
}

func TestSplit_EmptyDelimiterDefaultsToSpace(t *testing.T) {
	tokens, err := Split("a b", "", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, values(tokens))
}
