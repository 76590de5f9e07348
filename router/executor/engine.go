package executor

import (
	"context"
	"sync"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pg-sharding/stmtrouter/pkg/errcounter"
	"github.com/pg-sharding/stmtrouter/pkg/models/spqrerror"
	"github.com/pg-sharding/stmtrouter/pkg/spqrlog"
	"github.com/pg-sharding/stmtrouter/router/statistics"
	"go.uber.org/atomic"
	"golang.org/x/sync/semaphore"
)

// Engine runs physical statements of many logical statements on one
// bounded pool of workers.
type Engine struct {
	size     int64
	sem      *semaphore.Weighted
	inflight atomic.Int64

	stats  *statistics.Statistics
	errcnt errcounter.ErrCounter
}

type EngineOption func(*Engine)

func WithStatistics(stats *statistics.Statistics) EngineOption {
	return func(e *Engine) {
		e.stats = stats
	}
}

func WithErrCounter(ec errcounter.ErrCounter) EngineOption {
	return func(e *Engine) {
		e.errcnt = ec
	}
}

func NewEngine(size int, opts ...EngineOption) *Engine {
	if size < 1 {
		size = 1
	}
	e := &Engine{
		size: int64(size),
		sem:  semaphore.NewWeighted(int64(size)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Size() int {
	return int(e.size)
}

// InFlight is the number of physical calls currently running.
func (e *Engine) InFlight() int64 {
	return e.inflight.Load()
}

func (e *Engine) Statistics() *statistics.Statistics {
	return e.stats
}

// Execute dispatches every handle and waits for all of them. Outcomes are
// positional: outcome i belongs to handles[i] whatever the completion order.
// Shard failures yield a *PartialExecutionError holding all outcomes;
// cancellation of ctx closes whatever was produced and yields a
// SPQR_EXECUTION_CANCELED error.
func (e *Engine) Execute(ctx context.Context, kind Kind, handles []*StatementHandle) ([]Outcome, error) {
	outcomes := make([]Outcome, len(handles))
	if len(handles) == 0 {
		return outcomes, nil
	}

	wg := sync.WaitGroup{}
	for i, h := range handles {
		if err := e.sem.Acquire(ctx, 1); err != nil {
			for j := i; j < len(handles); j++ {
				outcomes[j] = Outcome{ShardID: handles[j].Unit.ShardID, UpdateCount: -1, Err: err}
			}
			break
		}

		wg.Add(1)
		go func(i int, h *StatementHandle) {
			defer wg.Done()
			defer e.sem.Release(1)

			outcomes[i] = e.executeOne(ctx, kind, h)
		}(i, h)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		closeOutcomes(outcomes)
		return nil, spqrerror.Newf(spqrerror.SPQR_EXECUTION_CANCELED,
			"%s canceled before all of %d shards completed: %w", kind, len(handles), err)
	}

	for _, o := range outcomes {
		if o.Err != nil {
			return outcomes, &PartialExecutionError{Outcomes: outcomes}
		}
	}
	return outcomes, nil
}

func (e *Engine) executeOne(ctx context.Context, kind Kind, h *StatementHandle) Outcome {
	e.inflight.Inc()
	defer e.inflight.Dec()

	span, ctx := opentracing.StartSpanFromContext(ctx, "shard."+kind.String())
	span.SetTag("shard", h.Unit.ShardID)
	ext.DBStatement.Set(span, h.Unit.SQL)
	defer span.Finish()

	spqrlog.Zero.Debug().
		Str("shard", h.Unit.ShardID).
		Str("sql", h.Unit.SQL).
		Str("kind", kind.String()).
		Msg("dispatch physical statement")

	start := time.Now()
	res := Outcome{ShardID: h.Unit.ShardID, UpdateCount: -1}

	switch kind {
	case KindQuery:
		res.Rows, res.Err = h.Stmt.Query(ctx)
		res.HasResultSet = res.Err == nil
	case KindUpdate:
		res.UpdateCount, res.Err = h.Stmt.Exec(ctx)
	case KindExecute:
		res.HasResultSet, res.Err = h.Stmt.Execute(ctx)
		if res.Err == nil {
			if res.HasResultSet {
				res.Rows = h.Stmt.ResultSet()
			} else {
				res.UpdateCount = h.Stmt.UpdateCount()
			}
		}
	}

	elapsed := time.Since(start)
	if e.stats != nil {
		e.stats.RecordShardCall(h.Unit.ShardID, elapsed)
	}
	spqrlog.SLogger.ReportStatement(kind.stmtType(), h.Unit.ShardID, h.Unit.SQL, elapsed)

	if res.Err != nil {
		if e.errcnt != nil {
			e.errcnt.ReportError(errcounter.ErrType(res.Err))
		}
		ext.LogError(span, res.Err)
		spqrlog.Zero.Error().
			Err(res.Err).
			Str("shard", h.Unit.ShardID).
			Str("kind", kind.String()).
			Msg("physical statement failed")
	}
	return res
}
