package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_IncludesBundledDrivers(t *testing.T) {
	names := List()
	assert.Contains(t, names, "sqlite")
	assert.Contains(t, names, "postgres")
	assert.Contains(t, names, "duckdb")
	assert.IsIncreasing(t, names)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "sqlite", cfg: Config{Driver: "sqlite"}},
		{name: "postgres", cfg: Config{Driver: "postgres"}},
		{name: "duckdb", cfg: Config{Driver: "duckdb"}},
		{name: "unknown driver", cfg: Config{Driver: "oracle"}, wantErr: true},
		{name: "empty driver", cfg: Config{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(tt.cfg, nil)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cfg.Driver, a.DialectName())
		})
	}
}

func TestNew_UnknownDriverError(t *testing.T) {
	_, err := New(Config{Driver: "oracle"}, nil)
	require.Error(t, err)

	var ude *UnknownDriverError
	require.ErrorAs(t, err, &ude)
	assert.Equal(t, "oracle", ude.Driver)
	assert.Contains(t, ude.Available, "sqlite")
	assert.Contains(t, err.Error(), `unknown driver "oracle"`)
}
