package statement

import (
	"context"

	"github.com/pg-sharding/stmtrouter/pkg/models/spqrerror"
	"github.com/pg-sharding/stmtrouter/pkg/spqrlog"
	"github.com/pg-sharding/stmtrouter/router/executor"
	"github.com/pg-sharding/stmtrouter/router/route"
	"github.com/pkg/errors"
)

// routeSQL routes the statement for params and creates one bound physical
// statement per execution unit. Every handle joins the routed cache as soon
// as it exists, so handles created before a failure are released by Close.
func (ps *PreparedStatement) routeSQL(ctx context.Context, params []any) (*route.RouteResult, []*executor.StatementHandle, error) {
	rr, err := ps.sctx.Router.Route(ctx, ps.sql, params)
	if err != nil {
		return nil, nil, ps.routingError(ctx, err)
	}
	ps.lastRoute = rr

	spqrlog.Zero.Debug().
		Str("statement", ps.id.String()).
		Strs("shards", rr.ShardIDs()).
		Interface("directive", rr.MergeDirective).
		Msg("routed statement")

	handles := make([]*executor.StatementHandle, 0, len(rr.ExecutionUnits))
	for _, unit := range rr.ExecutionUnits {
		h, err := ps.generateStatement(ctx, unit, params)
		if err != nil {
			return rr, handles, ps.routingError(ctx, errors.Wrapf(err, "shard %q", unit.ShardID))
		}
		if err := ps.remember(h); err != nil {
			return rr, handles, err
		}
		handles = append(handles, h)
	}
	return rr, handles, nil
}

func (ps *PreparedStatement) remember(h *executor.StatementHandle) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.closed.Load() {
		_ = h.Stmt.Close()
		return ps.checkOpen()
	}
	ps.routed = append(ps.routed, h)
	return nil
}

// generateStatement prepares unit on a connection of its shard, replays
// recorded configuration and binds params left to right from ordinal 1.
func (ps *PreparedStatement) generateStatement(ctx context.Context, unit route.ExecutionUnit, params []any) (*executor.StatementHandle, error) {
	c, err := ps.sctx.Provider.Acquire(ctx, unit.ShardID)
	if err != nil {
		return nil, err
	}
	stmt, err := c.Prepare(ctx, unit.SQL, ps.keys)
	if err != nil {
		if rerr := c.Release(); rerr != nil {
			spqrlog.Zero.Debug().Err(rerr).Str("shard", unit.ShardID).Msg("failed to release shard connection")
		}
		return nil, err
	}

	if err := replayConfig(stmt, ps.replay); err != nil {
		_ = stmt.Close()
		return nil, errors.Wrap(err, "replay statement configuration")
	}
	for i, v := range params {
		if err := stmt.SetParam(i+1, v); err != nil {
			_ = stmt.Close()
			return nil, errors.Wrapf(err, "bind parameter %d", i+1)
		}
	}
	return executor.NewStatementHandle(unit, params, stmt), nil
}

func (ps *PreparedStatement) routingError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return spqrerror.Newf(spqrerror.SPQR_EXECUTION_CANCELED, "statement %s canceled while routing: %w", ps.id, err)
	}
	spqrlog.Zero.Error().
		Err(err).
		Str("statement", ps.id.String()).
		Str("sql", ps.sql).
		Msg("failed to route statement")
	return spqrerror.Newf(spqrerror.SPQR_ROUTING_ERROR, "statement %q: %w", ps.sql, err)
}
