package cli

import (
	"fmt"
	"strings"

	"cae-cli/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "User config (~/.cae/config.json; CAE_CONFIG_DIR overrides the directory)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, message(p))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings and the raw config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, effectiveConfig{
				Dir:     app.Dir,
				Format:  app.Format,
				Archive: app.Archive,
				Log:     app.LogLevel,
				LogFile: app.LogFile,
				File:    app.cfg,
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value (empty value clears it); keys: " + strings.Join(store.ConfigKeys, ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, message(fmt.Sprintf("%s = %q", args[0], strings.TrimSpace(args[1]))))
		},
	})

	return cmd
}

type effectiveConfig struct {
	Dir     string        `json:"dir" yaml:"dir"`
	Format  string        `json:"format" yaml:"format"`
	Archive string        `json:"archive,omitempty" yaml:"archive,omitempty"`
	Log     string        `json:"logLevel" yaml:"logLevel"`
	LogFile string        `json:"logFile,omitempty" yaml:"logFile,omitempty"`
	File    *store.Config `json:"file" yaml:"file"`
}

func (c effectiveConfig) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "dir:       %s\n", c.Dir)
	fmt.Fprintf(&b, "format:    %s\n", c.Format)
	fmt.Fprintf(&b, "archive:   %s\n", orDash(c.Archive))
	fmt.Fprintf(&b, "log level: %s\n", c.Log)
	fmt.Fprintf(&b, "log file:  %s\n", orDash(c.LogFile))
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
