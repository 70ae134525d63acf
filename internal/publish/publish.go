package publish

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cae-cli/internal/model"
)

type WriteOptions struct {
	Overwrite bool
	// Report also writes an index.md with every ticket.
	Report bool
}

type WriteResult struct {
	Written []string `json:"written" yaml:"written"`
}

// WriteTickets writes tickets/<session>-<id>.md under toDir for each ticket.
func WriteTickets(tickets []model.Ticket, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	outDir := filepath.Join(toDir, "tickets")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	res := WriteResult{Written: []string{}}
	for _, t := range tickets {
		outPath := filepath.Join(outDir, ticketFileName(t))
		if err := writeFile(outPath, []byte(RenderTicketMarkdown(t)), opt.Overwrite); err != nil {
			return res, err
		}
		res.Written = append(res.Written, outPath)
	}
	if opt.Report {
		outPath := filepath.Join(toDir, "index.md")
		if err := writeFile(outPath, []byte(RenderReport("Completed cases", tickets)), opt.Overwrite); err != nil {
			return res, err
		}
		res.Written = append(res.Written, outPath)
	}
	return res, nil
}

func ticketFileName(t model.Ticket) string {
	sess := strings.TrimSpace(t.SessionID)
	if sess == "" {
		return fmt.Sprintf("%d.md", t.ID)
	}
	if len(sess) > 8 {
		sess = sess[:8]
	}
	return fmt.Sprintf("%s-%d.md", sess, t.ID)
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
