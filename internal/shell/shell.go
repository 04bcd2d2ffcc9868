// Package shell implements the interactive REPL: it accumulates input
// line by line, detects statement boundaries, and dispatches completed
// units to shell commands or the connected database.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/muesli/termenv"

	"github.com/leapstack-labs/sqlsh/internal/adapter"
	"github.com/leapstack-labs/sqlsh/internal/dialect"
	"github.com/leapstack-labs/sqlsh/internal/lexer"
	"github.com/leapstack-labs/sqlsh/internal/render"
)

// Options configures a Shell.
type Options struct {
	// Prompt is the primary prompt, e.g. "sqlsh> ".
	Prompt string

	// HistoryFile stores readline history. Empty disables history.
	HistoryFile string

	// Format is the initial output format (table, csv, json, md).
	Format string

	// Out and ErrOut receive results and error messages. Defaults to
	// os.Stdout and os.Stderr.
	Out    io.Writer
	ErrOut io.Writer

	// Logger receives debug logging. Nil means discard.
	Logger *slog.Logger

	// Profile controls terminal coloring. Zero value (TrueColor) is
	// fine for tests; New uses termenv detection when unset is wanted.
	Profile termenv.Profile

	// Connections are named profiles usable as "!connect <name>".
	Connections map[string]adapter.Config
}

// Shell is one interactive session. Not safe for concurrent use.
type Shell struct {
	prompt  string
	format  string
	out     io.Writer
	errOut  io.Writer
	logger  *slog.Logger
	profile termenv.Profile

	conn        adapter.Adapter
	quoting     lexer.Quoting
	connections map[string]adapter.Config

	buffer   strings.Builder
	script   *os.File
	settings map[string]string
	history  string

	quit bool
}

// New builds a Shell from opts, filling in defaults.
func New(opts Options) *Shell {
	if opts.Prompt == "" {
		opts.Prompt = "sqlsh> "
	}
	if opts.Format == "" {
		opts.Format = render.FormatTable
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Shell{
		prompt:      opts.Prompt,
		format:      opts.Format,
		out:         opts.Out,
		errOut:      opts.ErrOut,
		logger:      opts.Logger,
		profile:     opts.Profile,
		quoting:     lexer.DefaultQuoting,
		connections: opts.Connections,
		settings:    map[string]string{},
		history:     opts.HistoryFile,
	}
}

// Connect opens a connection before the loop starts, for --url style
// startup. Errors are returned, not printed. An empty driver is
// inferred from the URL scheme.
func (s *Shell) Connect(ctx context.Context, cfg adapter.Config) error {
	if cfg.Driver == "" {
		cfg.Driver, cfg.DSN = inferDriver(cfg.DSN)
	}
	a, err := adapter.New(cfg, s.logger)
	if err != nil {
		return err
	}
	if err := a.Connect(ctx, cfg); err != nil {
		return err
	}
	s.setConnection(a)
	return nil
}

func (s *Shell) setConnection(a adapter.Adapter) {
	if s.conn != nil {
		_ = s.conn.Close()
	}
	s.conn = a
	if a != nil {
		s.quoting = dialect.For(a.DialectName()).Quoting
	} else {
		s.quoting = lexer.DefaultQuoting
	}
}

// Run drives the readline loop until EOF or !quit.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt,
		HistoryFile:     s.history,
		AutoComplete:    s.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "!quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer func() { _ = rl.Close() }()

	for !s.quit {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			// Discard the half-built unit, keep the session.
			s.buffer.Reset()
			rl.SetPrompt(s.prompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		tag := s.HandleLine(ctx, line)
		if tag != "" {
			rl.SetPrompt(continuationPrompt(s.prompt, tag))
		} else {
			rl.SetPrompt(s.prompt)
		}
	}

	s.stopScript()
	if s.conn != nil {
		_ = s.conn.Close()
	}
	return nil
}

// HandleLine consumes one line of input. It returns the continuation
// tag when the accumulated unit still needs more input, or "" once the
// unit was dispatched (or the line was blank).
func (s *Shell) HandleLine(ctx context.Context, line string) string {
	s.record(line)

	if s.buffer.Len() == 0 && strings.TrimSpace(line) == "" {
		return ""
	}
	if s.buffer.Len() > 0 {
		s.buffer.WriteByte('\n')
	}
	s.buffer.WriteString(line)

	unit := s.buffer.String()
	res := lexer.DetectBoundary(unit, true, s.quoting)
	if !res.Complete() {
		return res.Tag
	}

	s.buffer.Reset()
	if err := s.dispatch(ctx, unit); err != nil {
		s.errorf("Error: %v", err)
	}
	return ""
}

// dispatch routes one complete input unit.
func (s *Shell) dispatch(ctx context.Context, unit string) error {
	trimmed := strings.TrimSpace(unit)
	switch {
	case trimmed == "":
		return nil
	case lexer.IsComment(trimmed):
		return nil
	case lexer.IsHelpRequest(trimmed):
		return s.runCommand(ctx, "help", "")
	case strings.HasPrefix(trimmed, lexer.CommandPrefix):
		name, args := splitCommandLine(trimmed)
		return s.runCommand(ctx, name, args)
	default:
		return s.execute(ctx, trimmed)
	}
}

// execute sends one SQL statement to the connection and renders the
// result.
func (s *Shell) execute(ctx context.Context, stmt string) error {
	if s.conn == nil {
		return errors.New("no current connection (use !connect)")
	}

	stmt = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(stmt), ";"))
	if stmt == "" {
		return nil
	}
	s.logger.Debug("execute", slog.String("stmt", stmt))

	if returnsRows(stmt) {
		rows, err := s.conn.Query(ctx, stmt)
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()
		return render.Rows(s.out, rows, s.format)
	}

	affected, err := s.conn.Exec(ctx, stmt)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "(%d rows affected)\n", affected)
	return nil
}

// returnsRows decides whether a statement should go through Query.
func returnsRows(stmt string) bool {
	word := stmt
	if i := strings.IndexFunc(stmt, func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' }); i >= 0 {
		word = stmt[:i]
	}
	switch strings.ToLower(word) {
	case "select", "with", "show", "pragma", "explain", "values", "describe", "table":
		return true
	}
	return false
}

// record appends raw input to the active script file, if any. The
// !script command itself is not recorded.
func (s *Shell) record(line string) {
	if s.script == nil {
		return
	}
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, lexer.CommandPrefix) {
		name, _ := splitCommandLine(trimmed)
		if cmd, err := resolveCommand(name); err == nil && cmd.name == "script" {
			return
		}
	}
	fmt.Fprintln(s.script, line)
}

func (s *Shell) stopScript() {
	if s.script == nil {
		return
	}
	name := s.script.Name()
	_ = s.script.Close()
	s.script = nil
	fmt.Fprintf(s.out, "Stopped recording to %s\n", name)
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}

func (s *Shell) errorf(format string, args ...any) {
	msg := s.profile.String(fmt.Sprintf(format, args...)).Foreground(s.profile.Color("1"))
	fmt.Fprintln(s.errOut, msg.String())
}

// splitCommandLine separates "!name rest of line" into the bare command
// name and its raw argument text.
func splitCommandLine(line string) (name, args string) {
	line = strings.TrimPrefix(line, lexer.CommandPrefix)
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		return line[:i], strings.TrimSpace(line[i+1:])
	}
	return line, ""
}
