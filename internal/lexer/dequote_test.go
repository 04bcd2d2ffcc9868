package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDequote_RoundTrip(t *testing.T) {
	for _, v := range []string{"abc", "my table", "", "a.b.c", "don-t"} {
		got, err := Dequote("'" + v + "'")
		require.NoError(t, err)
		assert.Equal(t, v, got)

		got, err = Dequote(`"` + v + `"`)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestDequote_Passthrough(t *testing.T) {
	for _, v := range []string{"", "abc", "a'b", `a"b`, "123"} {
		got, err := Dequote(v)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestDequote_StripsOnlyOneLayer(t *testing.T) {
	got, err := Dequote(`"'abc'"`)
	require.NoError(t, err)
	assert.Equal(t, "'abc'", got)
}

func TestDequote_Malformed(t *testing.T) {
	for _, v := range []string{`'abc"`, `"abc'`, "'abc", `"abc`, "'", `"`} {
		_, err := Dequote(v)
		assert.ErrorIs(t, err, ErrMalformedQuoting, "token %q", v)
	}
}
