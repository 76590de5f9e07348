package spqrlog

import (
	"io"
	"os"
)

// newWriter opens filepath in append mode, creating it if needed.
// An empty filepath means os.Stdout and a nil file.
func newWriter(filepath string) (*os.File, io.Writer, error) {
	if filepath == "" {
		return nil, os.Stdout, nil
	}
	f, err := os.OpenFile(filepath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}
