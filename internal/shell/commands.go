package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"

	"github.com/leapstack-labs/sqlsh/internal/adapter"
	"github.com/leapstack-labs/sqlsh/internal/lexer"
	"github.com/leapstack-labs/sqlsh/internal/render"
)

type command struct {
	name  string
	usage string
	help  string
	run   func(s *Shell, ctx context.Context, args string) error
}

// commands is the dispatch table, ordered for help output. It is
// populated in init to avoid an initialization cycle with cmdHelp,
// which ranges over the table.
var commands []command

func init() {
	commands = []command{
		{"help", "!help [command]", "Show usage for all commands or one command",
			(*Shell).cmdHelp},
		{"quit", "!quit", "Exit the shell",
			(*Shell).cmdQuit},
		{"exit", "!exit", "Exit the shell",
			(*Shell).cmdQuit},
		{"connect", "!connect <url|name> [driver]", "Open a database connection or named profile",
			(*Shell).cmdConnect},
		{"close", "!close", "Close the current connection",
			(*Shell).cmdClose},
		{"tables", "!tables", "List tables and views",
			(*Shell).cmdTables},
		{"columns", "!columns <[schema.]table>", "List the columns of a table",
			(*Shell).cmdColumns},
		{"describe", "!describe <[schema.]table>", "Describe a table",
			(*Shell).cmdColumns},
		{"sql", "!sql <statement>;", "Execute a statement even if it looks like a command",
			(*Shell).cmdSQL},
		{"all", "!all <statement>;", "Execute a statement against the connection",
			(*Shell).cmdSQL},
		{"run", "!run <file>", "Execute a script file",
			(*Shell).cmdRun},
		{"script", "!script <file> | !script off", "Start or stop recording input to a file",
			(*Shell).cmdScript},
		{"outputformat", "!outputformat <format>", "Set the result format",
			(*Shell).cmdOutputFormat},
		{"set", "!set [key value]", "Show or change session settings",
			(*Shell).cmdSet},
	}
}

// resolveCommand finds a command by name or unique prefix. An exact
// match always wins over prefix matches.
func resolveCommand(name string) (*command, error) {
	name = strings.ToLower(name)
	if name == "" {
		return nil, errors.New("missing command name (try !help)")
	}
	var matches []*command
	for i := range commands {
		if commands[i].name == name {
			return &commands[i], nil
		}
		if strings.HasPrefix(commands[i].name, name) {
			matches = append(matches, &commands[i])
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("unknown command: !%s (try !help)", name)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = "!" + m.name
		}
		return nil, fmt.Errorf("ambiguous command: !%s matches %s",
			name, strings.Join(names, ", "))
	}
}

func (s *Shell) runCommand(ctx context.Context, name, args string) error {
	cmd, err := resolveCommand(name)
	if err != nil {
		return err
	}
	return cmd.run(s, ctx, args)
}

func (s *Shell) cmdHelp(_ context.Context, args string) error {
	if args != "" {
		cmd, err := resolveCommand(strings.TrimPrefix(args, lexer.CommandPrefix))
		if err != nil {
			return err
		}
		s.printf("%-40s %s", cmd.usage, cmd.help)
		return nil
	}
	s.printf("Commands:")
	for _, cmd := range commands {
		s.printf("  %-38s %s", cmd.usage, cmd.help)
	}
	s.printf("")
	s.printf("Anything else is SQL, sent to the connection once it ends with ';'.")
	return nil
}

func (s *Shell) cmdQuit(context.Context, string) error {
	s.quit = true
	return nil
}

func (s *Shell) cmdConnect(ctx context.Context, args string) error {
	words, err := lexer.SplitWords(args)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return errors.New("usage: !connect <url> [driver]")
	}

	var cfg adapter.Config
	if profile, ok := s.connections[words[0]]; ok && len(words) == 1 {
		cfg = profile
	} else {
		cfg = adapter.Config{DSN: words[0]}
		if len(words) > 1 {
			cfg.Driver = words[1]
		} else {
			cfg.Driver, cfg.DSN = inferDriver(words[0])
		}
	}

	a, err := adapter.New(cfg, s.logger)
	if err != nil {
		return err
	}
	if err := a.Connect(ctx, cfg); err != nil {
		return err
	}
	s.setConnection(a)
	s.printf("Connected (%s)", cfg.Driver)
	return nil
}

// inferDriver guesses the driver from a URL scheme, e.g.
// "sqlite:app.db" or "postgres://host/db". Scheme-less URLs default to
// sqlite file paths.
func inferDriver(url string) (driver, dsn string) {
	scheme, rest, ok := strings.Cut(url, ":")
	if !ok {
		return "sqlite", url
	}
	switch scheme {
	case "sqlite", "duckdb":
		return scheme, strings.TrimPrefix(rest, "//")
	case "postgres", "postgresql":
		// pgx wants the full URL form.
		return "postgres", url
	default:
		return scheme, url
	}
}

func (s *Shell) cmdClose(context.Context, string) error {
	if s.conn == nil {
		return errors.New("no current connection")
	}
	err := s.conn.Close()
	s.setConnection(nil)
	if err != nil {
		return err
	}
	s.printf("Connection closed")
	return nil
}

func (s *Shell) cmdTables(ctx context.Context, _ string) error {
	if s.conn == nil {
		return errors.New("no current connection (use !connect)")
	}
	rows, err := s.conn.Tables(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	return render.Rows(s.out, rows, s.format)
}

func (s *Shell) cmdColumns(ctx context.Context, args string) error {
	if s.conn == nil {
		return errors.New("no current connection (use !connect)")
	}
	if strings.TrimSpace(args) == "" {
		return errors.New("usage: !columns <[schema.]table>")
	}

	// Parse the dotted name with the connection's quoting convention so
	// quoted identifiers keep their case and embedded dots.
	compound := lexer.SplitCompound("columns "+args, s.quoting)
	parts := compound.Values()

	var schema, table string
	switch len(parts) {
	case 1:
		table = parts[0]
	case 2:
		schema, table = parts[0], parts[1]
	case 3:
		// catalog.schema.table; the catalog is implied by the connection.
		schema, table = parts[1], parts[2]
	default:
		return fmt.Errorf("cannot parse table name: %s", args)
	}
	if table == "" {
		return fmt.Errorf("cannot parse table name: %s", args)
	}

	rows, err := s.conn.Columns(ctx, schema, table)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	return render.Rows(s.out, rows, s.format)
}

func (s *Shell) cmdSQL(ctx context.Context, args string) error {
	return s.execute(ctx, args)
}

func (s *Shell) cmdRun(ctx context.Context, args string) error {
	// Split with a limit so filenames containing spaces survive.
	tokens, err := lexer.Split("run "+args, " ", 1)
	if err != nil {
		return err
	}
	if len(tokens) < 2 {
		return errors.New("usage: !run <file>")
	}
	return s.runScript(ctx, tokens[1].Value)
}

// runScript feeds a file through the same line accumulation as
// interactive input, so multi-line statements work in scripts.
func (s *Shell) runScript(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() && !s.quit {
		s.HandleLine(ctx, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	if s.buffer.Len() > 0 {
		s.buffer.Reset()
		return fmt.Errorf("script ends mid-statement: %s", path)
	}
	return nil
}

func (s *Shell) cmdScript(_ context.Context, args string) error {
	args = strings.TrimSpace(args)
	switch {
	case args == "off":
		if s.script == nil {
			return errors.New("not recording")
		}
		s.stopScript()
		return nil
	case args == "":
		return errors.New("usage: !script <file> | !script off")
	case s.script != nil:
		return fmt.Errorf("already recording to %s (use !script off)", s.script.Name())
	}

	f, err := os.OpenFile(args, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open script file: %w", err)
	}
	s.script = f
	s.printf("Recording to %s", args)
	return nil
}

func (s *Shell) cmdOutputFormat(_ context.Context, args string) error {
	args = strings.TrimSpace(args)
	if args == "" {
		s.printf("outputformat: %s", s.format)
		return nil
	}
	if !render.ValidFormat(args) {
		return fmt.Errorf("unknown format: %s (%s)", args, strings.Join(render.Formats(), ", "))
	}
	s.format = args
	return nil
}

func (s *Shell) cmdSet(ctx context.Context, args string) error {
	words, err := lexer.SplitWords(args)
	if err != nil {
		return err
	}
	switch len(words) {
	case 0:
		s.printf("outputformat  %s", s.format)
		s.printf("prompt        %s", s.prompt)
		keys := make([]string, 0, len(s.settings))
		for k := range s.settings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s.printf("%-13s %s", k, s.settings[k])
		}
		return nil
	case 2:
		key, value := strings.ToLower(words[0]), words[1]
		switch key {
		case "outputformat":
			return s.cmdOutputFormat(ctx, value)
		case "prompt":
			s.prompt = value
		default:
			s.settings[key] = value
		}
		return nil
	default:
		return errors.New("usage: !set [key value]")
	}
}

// completer offers the commands, plus table names once connected.
func (s *Shell) completer() readline.AutoCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(commands))
	for _, cmd := range commands {
		items = append(items, readline.PcItem("!"+cmd.name))
	}
	items = append(items, readline.PcItemDynamic(func(string) []string {
		return s.tableNames()
	}))
	return readline.NewPrefixCompleter(items...)
}

// tableNames lists table names for completion. Failures just mean no
// suggestions.
func (s *Shell) tableNames() []string {
	if s.conn == nil {
		return nil
	}
	rows, err := s.conn.Tables(context.Background())
	if err != nil {
		return nil
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil
	}
	var names []string
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			continue
		}
		// The name column position differs per driver; take the first
		// string-ish column that is not a type marker.
		for _, v := range values {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			if str, ok := v.(string); ok && str != "" {
				names = append(names, str)
				break
			}
		}
	}
	_ = rows.Err()
	return names
}
