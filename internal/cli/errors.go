package cli

import (
	"errors"
	"fmt"
)

// reportedError marks an error a command already printed.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err: err}
}

func isReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

type notFoundError struct {
	kind string
	id   int
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.kind, e.id)
}

func errNotFound(kind string, id int) error {
	return notFoundError{kind: kind, id: id}
}

type archiveDisabledError struct{}

func (archiveDisabledError) Error() string {
	return "archive disabled: pass --archive, set CAE_ARCHIVE, or run `cae config set archivePath <file>`"
}
