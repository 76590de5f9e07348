package statement

import (
	"context"

	"github.com/pg-sharding/stmtrouter/pkg/spqrlog"
	"github.com/pg-sharding/stmtrouter/router/executor"
	"github.com/pkg/errors"
)

// AddBatch snapshots the bound parameters as a batch entry and clears them.
func (ps *PreparedStatement) AddBatch() error {
	if err := ps.checkOpen(); err != nil {
		return err
	}
	ps.batch = append(ps.batch, append([]any(nil), ps.params...))
	ps.params = nil
	return nil
}

func (ps *PreparedStatement) ClearBatch() error {
	if err := ps.checkOpen(); err != nil {
		return err
	}
	ps.batch = nil
	return nil
}

func (ps *PreparedStatement) BatchSize() int {
	return len(ps.batch)
}

// ExecuteBatch routes, executes and merges every batch entry in the order
// entries were added and returns one update count per entry. Physical
// statements of all entries are added to the routed cache, so generated
// keys of the whole batch stay readable. Entries stay in the batch until
// ClearBatch, so a failed flush can be run again.
//
// On failure the counts of entries completed so far are returned with the
// error of the failed entry.
func (ps *PreparedStatement) ExecuteBatch(ctx context.Context) (_ []int64, err error) {
	span, ctx := startSpan(ctx, ps, "execute_batch")
	defer func() { finishSpan(span, err) }()

	ctx, err = ps.execContext(ctx)
	if err != nil {
		return nil, err
	}

	ps.dropOutcome()

	batch := ps.batch
	spqrlog.Zero.Debug().
		Str("statement", ps.id.String()).
		Int("entries", len(batch)).
		Msg("execute batch")

	counts := make([]int64, 0, len(batch))
	for i, params := range batch {
		rr, handles, err := ps.routeSQL(ctx, params)
		if err != nil {
			return counts, errors.WithMessagef(err, "batch entry %d", i)
		}
		outcomes, err := ps.sctx.Executor.Execute(ctx, executor.KindUpdate, handles)
		if err != nil {
			return counts, errors.WithMessagef(err, "batch entry %d", i)
		}
		n, err := ps.sctx.Merger.MergeUpdate(rr.MergeDirective, outcomes)
		if err != nil {
			return counts, errors.WithMessagef(err, "batch entry %d", i)
		}
		counts = append(counts, n)
	}
	return counts, nil
}
