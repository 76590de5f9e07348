package errcounter

import (
	"context"
	"errors"
	"sync"

	"github.com/pg-sharding/stmtrouter/pkg/models/spqrerror"
)

const (
	ErrTypeTimeout  = "timeout"
	ErrTypeCanceled = "canceled"
	ErrTypeBackend  = "backend"
)

type ErrCounter interface {
	ReportError(errtype string)
	ErrorCounts() map[string]uint64
}

// ErrType classifies a physical call failure: context errors by kind,
// coded errors by code, anything else as a backend error.
func ErrType(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTypeTimeout
	case errors.Is(err, context.Canceled):
		return ErrTypeCanceled
	}
	var se *spqrerror.SpqrError
	if errors.As(err, &se) {
		return se.ErrorCode
	}
	return ErrTypeBackend
}

type Counter struct {
	mu     sync.Mutex
	counts map[string]uint64
}

var _ ErrCounter = &Counter{}

func New() *Counter {
	return &Counter{counts: make(map[string]uint64)}
}

func (c *Counter) ReportError(errtype string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[errtype]++
}

// ErrorCounts returns a copy of the counts.
func (c *Counter) ErrorCounts() map[string]uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := make(map[string]uint64, len(c.counts))
	for k, v := range c.counts {
		res[k] = v
	}
	return res
}
