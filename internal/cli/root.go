package cli

import (
	"fmt"
	"os"
	"strings"

	"cae-cli/internal/format"
	"cae-cli/internal/store"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X cae-cli/internal/cli.Version=...".
var Version = "dev"

type App struct {
	Dir        string
	Format     string
	PrettyJSON bool
	LogLevel   string
	LogFile    string
	Archive    string

	cfg *store.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "cae",
		Short:         "Student support case desk (TUI + scriptable shell)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  cae

  # Line-oriented session on stdin
  cae shell

  # Run a session script (shortcut for: cae run shift.cae)
  cae shift.cae

  # Exported tickets
  cae tickets list
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := app.resolve(); err != nil {
			return writeErr(cmd, err)
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("CAE_DIR", ""), "Ticket export directory (default: config exportDir, then .)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("CAE_FORMAT", ""), "Output format (text|json|edn|yaml)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("CAE_LOG_LEVEL", ""), "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", envOr("CAE_LOG_FILE", ""), "Append logs to this file")
	cmd.PersistentFlags().StringVar(&app.Archive, "archive", envOr("CAE_ARCHIVE", ""), "sqlite archive of finalized tickets (empty disables)")

	cmd.AddCommand(newShellCmd(app))
	cmd.AddCommand(newRunCmd(app))
	cmd.AddCommand(newTicketsCmd(app))
	cmd.AddCommand(newArchiveCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newVersionCmd(app))

	return cmd
}

// resolve fills unset options from the config file, then defaults.
// Flags and env were already applied by flag parsing.
func (app *App) resolve() error {
	cfg, err := store.LoadConfig()
	if err != nil {
		return err
	}
	app.cfg = cfg
	app.Dir = firstNonEmpty(app.Dir, cfg.ExportDir, ".")
	app.Format = firstNonEmpty(app.Format, cfg.Format, "text")
	app.LogLevel = firstNonEmpty(app.LogLevel, cfg.LogLevel, "info")
	app.LogFile = firstNonEmpty(app.LogFile, cfg.LogFile)
	app.Archive = firstNonEmpty(app.Archive, cfg.ArchivePath)
	if !format.Valid(app.Format) {
		return fmt.Errorf("unknown format: %s (known: %s)", app.Format, strings.Join(format.Formats, ", "))
	}
	return nil
}

func (app *App) tickets() store.TicketDir {
	return store.TicketDir{Dir: app.Dir}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return reported(err)
}

// Execute runs cmd and prints any error no command reported itself, such as
// flag parsing or unknown command errors hidden by SilenceErrors.
func Execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil && !isReported(err) {
		fmt.Fprintln(cmd.ErrOrStderr(), "error: "+err.Error())
	}
	return err
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cae version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, versionInfo{Version: Version})
		},
	}
}

type versionInfo struct {
	Version string `json:"version" yaml:"version"`
}

func (v versionInfo) Text() string { return "cae " + v.Version }
