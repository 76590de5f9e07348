package statement

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pg-sharding/stmtrouter/pkg/conn"
	"github.com/pg-sharding/stmtrouter/pkg/models/spqrerror"
	"github.com/pg-sharding/stmtrouter/pkg/spqrlog"
	"github.com/pg-sharding/stmtrouter/router/executor"
	"github.com/pg-sharding/stmtrouter/router/merger"
)

func startSpan(ctx context.Context, ps *PreparedStatement, op string) (opentracing.Span, context.Context) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "statement."+op)
	span.SetTag("statement", ps.id.String())
	ext.DBStatement.Set(span, ps.sql)
	return span, ctx
}

func finishSpan(span opentracing.Span, err error) {
	if err != nil {
		ext.LogError(span, err)
	}
	span.Finish()
}

// execContext marks the statement executed and derives the context Cancel
// aborts. It stays alive until the next execution or Close, as lazily
// merged cursors keep reading under it.
func (ps *PreparedStatement) execContext(ctx context.Context) (context.Context, error) {
	if err := ps.checkOpen(); err != nil {
		return nil, err
	}
	ps.executed = true

	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.cancel != nil {
		ps.cancel()
	}
	ctx, ps.cancel = context.WithCancel(ctx)
	return ctx, nil
}

// invalidate drops the outcome and physical statements of the previous
// execution.
func (ps *PreparedStatement) invalidate() {
	ps.mu.Lock()
	handles := ps.routed
	ps.routed = nil
	ps.mu.Unlock()

	ps.lastRoute = nil
	ps.dropOutcome()
	if err := closeHandles(handles); err != nil {
		spqrlog.Zero.Debug().Err(err).Str("statement", ps.id.String()).Msg("failed to close previous routed statements")
	}
}

// dropOutcome closes the result set of the previous execution and resets
// the update count.
func (ps *PreparedStatement) dropOutcome() {
	ps.mu.Lock()
	rs := ps.resultSet
	ps.resultSet = nil
	ps.mu.Unlock()

	ps.updateCount = -1
	if rs != nil {
		if err := rs.Close(); err != nil {
			spqrlog.Zero.Debug().Err(err).Str("statement", ps.id.String()).Msg("failed to close previous result set")
		}
	}
}

// setResultSet keeps rows as the outcome. Rows merged after a concurrent
// Close are closed right away.
func (ps *PreparedStatement) setResultSet(rows conn.Rows) error {
	ps.mu.Lock()
	if ps.closed.Load() {
		ps.mu.Unlock()
		_ = rows.Close()
		return spqrerror.Newf(spqrerror.SPQR_INVALID_STATE, "statement %s is closed", ps.id)
	}
	ps.resultSet = rows
	ps.mu.Unlock()
	ps.updateCount = -1
	return nil
}

func (ps *PreparedStatement) setUpdateCount(n int64) {
	ps.mu.Lock()
	ps.resultSet = nil
	ps.mu.Unlock()
	ps.updateCount = n
}

// run routes the bound parameters afresh and executes the physical
// statements with kind.
func (ps *PreparedStatement) run(ctx context.Context, kind executor.Kind) (context.Context, any, []executor.Outcome, error) {
	ctx, err := ps.execContext(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	ps.invalidate()

	rr, handles, err := ps.routeSQL(ctx, ps.params)
	if err != nil {
		return nil, nil, nil, err
	}
	outcomes, err := ps.sctx.Executor.Execute(ctx, kind, handles)
	if err != nil {
		return nil, nil, nil, err
	}
	return ctx, rr.MergeDirective, outcomes, nil
}

// ExecuteQuery runs the statement on its shards and returns the merged
// cursor. A shard failure yields *executor.PartialExecutionError; the
// outcomes it holds stay readable until the next execution or Close.
func (ps *PreparedStatement) ExecuteQuery(ctx context.Context) (_ conn.Rows, err error) {
	span, ctx := startSpan(ctx, ps, "execute_query")
	defer func() { finishSpan(span, err) }()

	ctx, directive, outcomes, err := ps.run(ctx, executor.KindQuery)
	if err != nil {
		return nil, err
	}
	rows, err := ps.sctx.Merger.MergeQuery(ctx, directive, outcomes)
	if err != nil {
		return nil, err
	}
	if err := ps.setResultSet(rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (ps *PreparedStatement) ExecuteUpdate(ctx context.Context) (_ int64, err error) {
	span, ctx := startSpan(ctx, ps, "execute_update")
	defer func() { finishSpan(span, err) }()

	_, directive, outcomes, err := ps.run(ctx, executor.KindUpdate)
	if err != nil {
		return 0, err
	}
	n, err := ps.sctx.Merger.MergeUpdate(directive, outcomes)
	if err != nil {
		return 0, err
	}
	ps.setUpdateCount(n)
	return n, nil
}

// Execute runs a statement of any kind. It returns true when the shards
// produced result sets, read with ResultSet; otherwise UpdateCount holds
// the merged count.
func (ps *PreparedStatement) Execute(ctx context.Context) (_ bool, err error) {
	span, ctx := startSpan(ctx, ps, "execute")
	defer func() { finishSpan(span, err) }()

	ctx, directive, outcomes, err := ps.run(ctx, executor.KindExecute)
	if err != nil {
		return false, err
	}

	hasResultSet := false
	for _, o := range outcomes {
		hasResultSet = hasResultSet || o.HasResultSet
	}
	if hasResultSet {
		rows, err := ps.sctx.Merger.MergeQuery(ctx, directive, outcomes)
		if err != nil {
			return false, err
		}
		if err := ps.setResultSet(rows); err != nil {
			return false, err
		}
		return true, nil
	}

	n, err := ps.sctx.Merger.MergeUpdate(directive, outcomes)
	if err != nil {
		return false, err
	}
	ps.setUpdateCount(n)
	return false, nil
}

// ResultSet is the merged cursor of the latest execution, nil when it
// produced an update count.
func (ps *PreparedStatement) ResultSet() conn.Rows {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.resultSet
}

// UpdateCount is the merged count of the latest execution, -1 when it
// produced a result set or nothing was executed.
func (ps *PreparedStatement) UpdateCount() int64 {
	return ps.updateCount
}

// routedHandles is RoutedStatements for internal readers: a statement
// marked executed whose routing never completed is routed once here.
func (ps *PreparedStatement) routedHandles(ctx context.Context) ([]*executor.StatementHandle, error) {
	if !ps.executed {
		return nil, nil
	}
	if handles := ps.handles(); len(handles) > 0 || ps.lastRoute != nil {
		return handles, nil
	}
	_, handles, err := ps.routeSQL(ctx, ps.params)
	return handles, err
}

// GeneratedKeys concatenates the generated keys of every routed physical
// statement in routing order. After a batch that spans every entry.
func (ps *PreparedStatement) GeneratedKeys(ctx context.Context) (conn.Rows, error) {
	if err := ps.checkOpen(); err != nil {
		return nil, err
	}
	if ps.keys.Mode == conn.KeysNone {
		return nil, spqrerror.Newf(spqrerror.SPQR_INVALID_STATE, "statement %s was not created to return generated keys", ps.id)
	}

	handles, err := ps.routedHandles(ctx)
	if err != nil {
		return nil, err
	}
	outcomes := make([]executor.Outcome, 0, len(handles))
	for _, h := range handles {
		rows, err := h.Stmt.GeneratedKeys()
		if err != nil {
			for _, o := range outcomes {
				_ = o.Rows.Close()
			}
			return nil, err
		}
		outcomes = append(outcomes, executor.Outcome{
			ShardID:      h.Unit.ShardID,
			Rows:         rows,
			UpdateCount:  -1,
			HasResultSet: true,
		})
	}
	return ps.sctx.Merger.MergeQuery(ctx, merger.Iterate{}, outcomes)
}
