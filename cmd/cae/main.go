package main

import (
	"os"
	"strings"

	"cae-cli/internal/cli"
)

func isScriptPath(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasSuffix(s, ".cae") && len(s) > len(".cae")
}

func isRunFlag(s string) bool {
	s = strings.TrimSpace(s)
	return s == "--keep-going" || strings.HasPrefix(s, "--keep-going=")
}

// rewriteScriptArgs turns `cae <file>.cae` into `cae run <file>.cae`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before parsing.
// Persistent flags may come first (`cae --dir out shift.cae`), so the first positional token
// is located rather than assuming argv[1].
func rewriteScriptArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	// Unknown flags are skipped without consuming a value so a script path is never swallowed.
	valueFlags := map[string]bool{
		"--dir":       true,
		"--format":    true,
		"--log-level": true,
		"--log-file":  true,
		"--archive":   true,
	}

	// --keep-going belongs to run, so it is moved after the inserted subcommand.
	// After "--" every token is positional and nothing is moved.
	insertRun := func(i int, moveRunFlags bool) []string {
		out := make([]string, 0, len(argv)+1)
		var runFlags []string
		for j, a := range argv[:i] {
			if j > 0 && moveRunFlags && isRunFlag(a) {
				runFlags = append(runFlags, a)
				continue
			}
			out = append(out, a)
		}
		out = append(out, "run")
		out = append(out, runFlags...)
		return append(out, argv[i:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isScriptPath(argv[i+1]) {
				return insertRun(i+1, false)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		if isScriptPath(a) {
			return insertRun(i, true)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteScriptArgs(os.Args)

	if err := cli.Execute(cli.NewRootCmd()); err != nil {
		os.Exit(1)
	}
}
