package cli

import (
	"io"
	"os"

	"cae-cli/internal/session"

	"github.com/spf13/cobra"
)

func newShellCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Line-oriented desk session on stdin (type help for commands)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			return runSession(cmd, app, in, session.Interactive(in), false)
		},
	}
}

func newRunCmd(app *App) *cobra.Command {
	var keepGoing bool

	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Execute a session script (one desk command per line, # comments)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader
			if args[0] == "-" {
				in = cmd.InOrStdin()
			} else {
				f, err := os.Open(args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				defer f.Close()
				in = f
			}
			return runSession(cmd, app, in, false, !keepGoing)
		},
	}
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "Continue after a failing line")
	return cmd
}

func runSession(cmd *cobra.Command, app *App, in io.Reader, prompt, stopOnError bool) error {
	logger, closeLog, err := newLogger(app, cmd.ErrOrStderr())
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closeLog()

	d, closeDesk, err := openDesk(cmd.Context(), app, logger)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closeDesk()

	s := session.New(d, cmd.OutOrStdout(), cmd.ErrOrStderr(), session.Options{
		Tickets:     app.tickets(),
		Format:      app.Format,
		Pretty:      app.PrettyJSON,
		StopOnError: stopOnError,
		Logger:      logger,
	})
	// The session reports its own errors, with line numbers for scripts.
	return reported(s.Run(cmd.Context(), in, prompt))
}
