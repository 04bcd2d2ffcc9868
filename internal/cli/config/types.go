package config

// Config holds the shell configuration, assembled from defaults, the
// config file, SQLSH_ environment variables, and command-line flags.
type Config struct {
	// Prompt is the primary prompt string.
	Prompt string `koanf:"prompt"`

	// HistoryFile stores readline history. Empty disables history.
	HistoryFile string `koanf:"history_file"`

	// Format is the default output format (table, vertical, csv, tsv,
	// json, markdown).
	Format string `koanf:"format"`

	// URL and Driver describe the connection opened at startup. Both
	// empty means start disconnected.
	URL    string `koanf:"url"`
	Driver string `koanf:"driver"`

	// Verbose enables debug logging to stderr.
	Verbose bool `koanf:"verbose"`

	// Connections are named connection profiles, usable as
	// "sqlsh --connection staging" or "!connect staging".
	Connections map[string]Connection `koanf:"connections"`
}

// Connection is one named connection profile from the config file.
type Connection struct {
	URL    string `koanf:"url"`
	Driver string `koanf:"driver"`
}

// Connection looks up a named profile.
func (c *Config) Connection(name string) (Connection, bool) {
	conn, ok := c.Connections[name]
	return conn, ok
}
