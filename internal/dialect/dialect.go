// Package dialect maps driver names to the identifier quoting
// convention the lexer should honor for that connection.
package dialect

import (
	"sort"
	"sync"

	"github.com/leapstack-labs/sqlsh/internal/lexer"
)

// Dialect describes the lexical conventions of one database family.
type Dialect struct {
	Name    string
	Quoting lexer.Quoting
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Dialect)
)

// Register adds a dialect to the registry. Later registrations under the
// same name replace earlier ones.
func Register(d Dialect) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[d.Name] = d
}

// For returns the dialect registered under name, falling back to the
// ANSI default when the driver is unknown. The lexer keeps working with
// standard conventions against drivers we have no specific knowledge of.
func For(name string) Dialect {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if d, ok := registry[name]; ok {
		return d
	}
	return Dialect{Name: "ansi", Quoting: lexer.DefaultQuoting}
}

// List returns all registered dialect names, sorted.
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	// Postgres stores unquoted identifiers lower-cased, so folding them
	// upper would miss every catalog lookup.
	for _, d := range []Dialect{
		{Name: "ansi", Quoting: lexer.DefaultQuoting},
		{Name: "postgres", Quoting: lexer.Quoting{Start: '"', End: '"', Upper: false}},
		{Name: "sqlite", Quoting: lexer.Quoting{Start: '"', End: '"', Upper: false}},
		{Name: "duckdb", Quoting: lexer.Quoting{Start: '"', End: '"', Upper: false}},
		{Name: "mysql", Quoting: lexer.Quoting{Start: '`', End: '`', Upper: false, LineComments: []string{"--", "#"}}},
		{Name: "sqlserver", Quoting: lexer.Quoting{Start: '[', End: ']', Upper: false}},
	} {
		Register(d)
	}
}
