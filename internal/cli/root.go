// Package cli provides the command-line interface for sqlsh.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlsh/internal/adapter"
	"github.com/leapstack-labs/sqlsh/internal/cli/config"
	"github.com/leapstack-labs/sqlsh/internal/render"
	"github.com/leapstack-labs/sqlsh/internal/shell"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	var connectionName string

	rootCmd := &cobra.Command{
		Use:   "sqlsh",
		Short: "sqlsh - interactive SQL shell",
		Long: `sqlsh is an interactive SQL shell for SQLite, PostgreSQL and DuckDB.

Statements end with a semicolon and may span lines; the continuation
prompt names what the shell is waiting for (an unclosed quote, a block
comment, the semicolon). Shell commands start with "!"; type !help
inside the shell for the full list.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			return runShell(cmd, cfg, connectionName)
		},
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default: ./sqlsh.yaml, searched upward)")
	rootCmd.Flags().StringVarP(&connectionName, "connection", "n", "", "Named connection profile from the config file")
	rootCmd.Flags().String("url", "", "Connection URL to open at startup")
	rootCmd.Flags().String("driver", "", "Driver for --url (sqlite, postgres, duckdb)")
	rootCmd.Flags().StringP("format", "f", "", "Output format ("+strings.Join(render.Formats(), "|")+")")
	rootCmd.Flags().String("prompt", "", "Primary prompt string")
	rootCmd.Flags().BoolP("verbose", "v", false, "Debug logging to stderr")

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return render.Formats(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("driver", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return adapter.List(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func runShell(cmd *cobra.Command, cfg *config.Config, connectionName string) error {
	logger := slog.New(slog.DiscardHandler)
	if cfg.Verbose {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	profiles := make(map[string]adapter.Config, len(cfg.Connections))
	for name, conn := range cfg.Connections {
		profiles[name] = adapter.Config{Driver: conn.Driver, DSN: conn.URL}
	}

	s := shell.New(shell.Options{
		Prompt:      cfg.Prompt,
		HistoryFile: cfg.HistoryFile,
		Format:      cfg.Format,
		Out:         cmd.OutOrStdout(),
		ErrOut:      cmd.ErrOrStderr(),
		Logger:      logger,
		Profile:     termenv.ColorProfile(),
		Connections: profiles,
	})

	ctx := cmd.Context()
	if startup, err := startupConnection(cfg, connectionName); err != nil {
		return err
	} else if startup.DSN != "" || startup.Driver != "" {
		if err := s.Connect(ctx, startup); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
	}

	return s.Run(ctx)
}

// startupConnection resolves the connection to open before the loop
// starts: --connection beats --url/config defaults.
func startupConnection(cfg *config.Config, name string) (adapter.Config, error) {
	if name != "" {
		conn, ok := cfg.Connection(name)
		if !ok {
			return adapter.Config{}, fmt.Errorf("unknown connection profile: %s", name)
		}
		return adapter.Config{Driver: conn.Driver, DSN: conn.URL}, nil
	}
	if cfg.URL == "" {
		return adapter.Config{}, nil
	}
	return adapter.Config{Driver: cfg.Driver, DSN: cfg.URL}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sqlsh v%s (%s)\n", Version, GitCommit)
		},
	}
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
