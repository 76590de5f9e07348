// Package statement implements the logical prepared statement of a
// sharded database: parameters are bound once, the statement is routed to
// its shards, executed there in parallel and the shard outcomes are merged
// back into one result.
//
// A PreparedStatement is driven by one goroutine at a time. Only Cancel and
// Close may be called concurrently with other methods.
package statement

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pg-sharding/stmtrouter/pkg/conn"
	"github.com/pg-sharding/stmtrouter/pkg/models/spqrerror"
	"github.com/pg-sharding/stmtrouter/pkg/spqrlog"
	"github.com/pg-sharding/stmtrouter/router/executor"
	"github.com/pg-sharding/stmtrouter/router/merger"
	"github.com/pg-sharding/stmtrouter/router/qrouter"
	"github.com/pg-sharding/stmtrouter/router/route"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
)

// ShardingContext holds the collaborators shared by the statements of one
// sharded data source.
type ShardingContext struct {
	Router   qrouter.QueryRouter
	Provider conn.Provider
	Executor *executor.Engine
	Merger   merger.Merger
}

func (sctx *ShardingContext) validate() error {
	switch {
	case sctx == nil:
		return spqrerror.New(spqrerror.SPQR_CONFIGURATION, "sharding context is not set")
	case sctx.Router == nil:
		return spqrerror.New(spqrerror.SPQR_CONFIGURATION, "sharding context has no query router")
	case sctx.Provider == nil:
		return spqrerror.New(spqrerror.SPQR_CONFIGURATION, "sharding context has no connection provider")
	case sctx.Executor == nil:
		return spqrerror.New(spqrerror.SPQR_CONFIGURATION, "sharding context has no executor")
	case sctx.Merger == nil:
		return spqrerror.New(spqrerror.SPQR_CONFIGURATION, "sharding context has no merger")
	}
	return nil
}

type PreparedStatement struct {
	id   uuid.UUID
	sql  string
	sctx *ShardingContext
	keys conn.KeyRequest

	params []any
	batch  [][]any

	replay       []configCall
	fetchSize    int
	queryTimeout time.Duration
	maxRows      int

	executed    bool
	lastRoute   *route.RouteResult
	updateCount int64

	// mu guards the fields below against Cancel and Close.
	mu        sync.Mutex
	routed    []*executor.StatementHandle
	resultSet conn.Rows
	cancel    context.CancelFunc
	closed    atomic.Bool
}

// NewPreparedStatement creates a statement for sql. Contradictory generated
// key options are rejected here, before anything is routed.
func NewPreparedStatement(sctx *ShardingContext, sql string, opts ...Option) (*PreparedStatement, error) {
	if err := sctx.validate(); err != nil {
		return nil, err
	}

	ko := &keyOptions{}
	for _, opt := range opts {
		opt(ko)
	}
	keys, err := ko.keyRequest()
	if err != nil {
		return nil, err
	}

	ps := &PreparedStatement{
		id:          uuid.New(),
		sql:         sql,
		sctx:        sctx,
		keys:        keys,
		updateCount: -1,
	}

	spqrlog.Zero.Debug().
		Str("statement", ps.id.String()).
		Str("sql", sql).
		Str("keys", keys.Mode.String()).
		Msg("created prepared statement")
	return ps, nil
}

func (ps *PreparedStatement) ID() uuid.UUID {
	return ps.id
}

func (ps *PreparedStatement) SQL() string {
	return ps.sql
}

func (ps *PreparedStatement) KeyMode() conn.KeyMode {
	return ps.keys.Mode
}

// Executed reports whether any execute method, batch included, was called.
func (ps *PreparedStatement) Executed() bool {
	return ps.executed
}

func (ps *PreparedStatement) IsClosed() bool {
	return ps.closed.Load()
}

func (ps *PreparedStatement) checkOpen() error {
	if ps.closed.Load() {
		return spqrerror.Newf(spqrerror.SPQR_INVALID_STATE, "statement %s is closed", ps.id)
	}
	return nil
}

// Bind replaces the bound parameters with params.
func (ps *PreparedStatement) Bind(params ...any) error {
	if err := ps.checkOpen(); err != nil {
		return err
	}
	ps.params = append([]any(nil), params...)
	return nil
}

// SetParameter binds v at the 1-based ordinal, growing the parameter
// sequence with nils when needed.
func (ps *PreparedStatement) SetParameter(ordinal int, v any) error {
	if err := ps.checkOpen(); err != nil {
		return err
	}
	if ordinal < 1 {
		return spqrerror.Newf(spqrerror.SPQR_INVALID_STATE, "parameter index %d is out of range", ordinal)
	}
	for len(ps.params) < ordinal {
		ps.params = append(ps.params, nil)
	}
	ps.params[ordinal-1] = v
	return nil
}

func (ps *PreparedStatement) ClearParameters() error {
	if err := ps.checkOpen(); err != nil {
		return err
	}
	ps.params = nil
	return nil
}

func (ps *PreparedStatement) Parameters() []any {
	return append([]any(nil), ps.params...)
}

func (ps *PreparedStatement) setConfig(opt configOption, value any) error {
	if err := ps.checkOpen(); err != nil {
		return err
	}
	call := configCall{opt: opt, value: value}
	var err error
	for _, st := range ps.RoutedStatements() {
		err = multierr.Append(err, call.apply(st))
	}
	if err != nil {
		return err
	}
	ps.replay = append(ps.replay, call)
	return nil
}

func (ps *PreparedStatement) SetFetchSize(rows int) error {
	if rows < 0 {
		return spqrerror.Newf(spqrerror.SPQR_INVALID_STATE, "fetch size %d is negative", rows)
	}
	if err := ps.setConfig(optFetchSize, rows); err != nil {
		return err
	}
	ps.fetchSize = rows
	return nil
}

func (ps *PreparedStatement) FetchSize() int {
	return ps.fetchSize
}

func (ps *PreparedStatement) SetQueryTimeout(d time.Duration) error {
	if d < 0 {
		return spqrerror.Newf(spqrerror.SPQR_INVALID_STATE, "query timeout %s is negative", d)
	}
	if err := ps.setConfig(optQueryTimeout, d); err != nil {
		return err
	}
	ps.queryTimeout = d
	return nil
}

func (ps *PreparedStatement) QueryTimeout() time.Duration {
	return ps.queryTimeout
}

func (ps *PreparedStatement) SetMaxRows(max int) error {
	if max < 0 {
		return spqrerror.Newf(spqrerror.SPQR_INVALID_STATE, "max rows %d is negative", max)
	}
	if err := ps.setConfig(optMaxRows, max); err != nil {
		return err
	}
	ps.maxRows = max
	return nil
}

func (ps *PreparedStatement) MaxRows() int {
	return ps.maxRows
}

// RoutedStatements returns the physical statements behind the latest
// execution. It never routes: before the first execute it is empty.
func (ps *PreparedStatement) RoutedStatements() []conn.Statement {
	handles := ps.handles()
	res := make([]conn.Statement, 0, len(handles))
	for _, h := range handles {
		res = append(res, h.Stmt)
	}
	return res
}

func (ps *PreparedStatement) handles() []*executor.StatementHandle {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return append([]*executor.StatementHandle(nil), ps.routed...)
}

// Cancel aborts the execution in progress, if any. It is safe to call from
// another goroutine.
func (ps *PreparedStatement) Cancel() error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.cancel != nil {
		ps.cancel()
	}
	var err error
	for _, h := range ps.routed {
		err = multierr.Append(err, h.Stmt.Cancel())
	}

	spqrlog.Zero.Debug().
		Str("statement", ps.id.String()).
		Int("shards", len(ps.routed)).
		Msg("cancel prepared statement")
	return err
}

// Close releases every physical statement and its shard connection. Once
// closed, other methods fail with SPQR_INVALID_STATE; closing again is a
// no-op.
func (ps *PreparedStatement) Close() error {
	if !ps.closed.CompareAndSwap(false, true) {
		return nil
	}

	ps.mu.Lock()
	handles, rs := ps.routed, ps.resultSet
	ps.routed, ps.resultSet = nil, nil
	if ps.cancel != nil {
		ps.cancel()
		ps.cancel = nil
	}
	ps.mu.Unlock()

	var err error
	if rs != nil {
		err = multierr.Append(err, rs.Close())
	}
	err = multierr.Append(err, closeHandles(handles))

	spqrlog.Zero.Debug().
		Str("statement", ps.id.String()).
		Int("shards", len(handles)).
		Msg("closed prepared statement")
	return err
}

func closeHandles(handles []*executor.StatementHandle) error {
	var err error
	for _, h := range handles {
		err = multierr.Append(err, h.Stmt.Close())
	}
	return err
}
