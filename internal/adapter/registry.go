package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// ErrNotConnected is returned when a statement is issued before Connect.
var ErrNotConnected = errors.New("not connected to a database")

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func(*slog.Logger) Adapter)
)

// Register adds an adapter factory to the registry. Called by adapter
// implementations in their init functions.
func Register(name string, factory func(*slog.Logger) Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// New creates an adapter for cfg.Driver. A nil logger means a discard
// logger.
func New(cfg Config, logger *slog.Logger) (Adapter, error) {
	if cfg.Driver == "" {
		return nil, fmt.Errorf("adapter driver not specified")
	}

	registryMu.RLock()
	factory, ok := registry[cfg.Driver]
	registryMu.RUnlock()
	if !ok {
		return nil, &UnknownDriverError{Driver: cfg.Driver, Available: List()}
	}
	return factory(logger), nil
}

// List returns all registered adapter names, sorted.
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

// UnknownDriverError reports a connect attempt with an unregistered
// driver name.
type UnknownDriverError struct {
	Driver    string
	Available []string
}

func (e *UnknownDriverError) Error() string {
	return fmt.Sprintf("unknown driver %q (available: %s)",
		e.Driver, strings.Join(e.Available, ", "))
}
