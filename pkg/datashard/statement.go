package datashard

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pg-sharding/stmtrouter/pkg/conn"
	"github.com/pg-sharding/stmtrouter/pkg/models/spqrerror"
	"github.com/pg-sharding/stmtrouter/pkg/spqrlog"
	"github.com/pg-sharding/stmtrouter/pkg/tupleslot"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// GeneratedKeyColumn names the single column of keys reported through
// LastInsertId.
const GeneratedKeyColumn = "generated_key"

type shardConn struct {
	shardID string
	driver  string
	c       *sqlx.Conn
}

var _ conn.ShardConn = &shardConn{}

func (sc *shardConn) ShardID() string {
	return sc.shardID
}

func (sc *shardConn) Release() error {
	return sc.c.Close()
}

func (sc *shardConn) Prepare(ctx context.Context, query string, keys conn.KeyRequest) (conn.Statement, error) {
	text := query
	switch keys.Mode {
	case conn.KeysByColumnIndexes:
		return nil, spqrerror.Newf(spqrerror.SPQR_UNEXPECTED, "generated keys by column index are not supported by %s driver", sc.driver)
	case conn.KeysByColumnNames:
		if len(keys.ColumnNames) == 0 {
			return nil, spqrerror.New(spqrerror.SPQR_CONFIGURATION, "no generated key columns requested")
		}
		text = strings.TrimRight(strings.TrimSpace(query), ";") + " RETURNING " + strings.Join(keys.ColumnNames, ", ")
	}

	stmt, err := sc.c.PreparexContext(ctx, text)
	if err != nil {
		return nil, errors.Wrapf(err, "prepare on shard %q", sc.shardID)
	}

	spqrlog.Zero.Debug().
		Str("shard", sc.shardID).
		Str("query", text).
		Str("keys", keys.Mode.String()).
		Msg("prepared statement")

	return &Statement{
		shardID:     sc.shardID,
		sql:         query,
		keys:        keys,
		conn:        sc.c,
		stmt:        stmt,
		updateCount: -1,
	}, nil
}

// Statement is a prepared statement bound to one checked out connection.
type Statement struct {
	shardID string
	sql     string
	keys    conn.KeyRequest

	conn *sqlx.Conn
	stmt *sqlx.Stmt

	params    []any
	fetchSize int
	maxRows   int
	timeout   time.Duration

	updateCount int64
	generated   *tupleslot.TupleTableSlot

	// mu guards the fields below, Close and Cancel run concurrently with
	// a call in flight.
	mu        sync.Mutex
	resultSet conn.Rows
	cancel    context.CancelFunc
	closed    bool
}

var _ conn.Statement = &Statement{}

func (s *Statement) ShardID() string {
	return s.shardID
}

func (s *Statement) SQL() string {
	return s.sql
}

func (s *Statement) SetParam(ordinal int, value any) error {
	if ordinal < 1 {
		return spqrerror.Newf(spqrerror.SPQR_INVALID_STATE, "parameter index %d is out of range", ordinal)
	}
	for len(s.params) < ordinal {
		s.params = append(s.params, nil)
	}
	s.params[ordinal-1] = value
	return nil
}

func (s *Statement) ClearParams() {
	s.params = nil
}

// SetFetchSize is recorded only: database/sql drivers stream rows on
// their own terms.
func (s *Statement) SetFetchSize(rows int) error {
	if rows < 0 {
		return spqrerror.Newf(spqrerror.SPQR_INVALID_STATE, "fetch size %d is negative", rows)
	}
	s.fetchSize = rows
	return nil
}

func (s *Statement) FetchSize() int {
	return s.fetchSize
}

func (s *Statement) SetQueryTimeout(d time.Duration) error {
	if d < 0 {
		return spqrerror.Newf(spqrerror.SPQR_INVALID_STATE, "query timeout %s is negative", d)
	}
	s.timeout = d
	return nil
}

func (s *Statement) SetMaxRows(max int) error {
	if max < 0 {
		return spqrerror.Newf(spqrerror.SPQR_INVALID_STATE, "max rows %d is negative", max)
	}
	s.maxRows = max
	return nil
}

// callContext derives the context of one driver call. Cancel aborts it.
func (s *Statement) callContext(ctx context.Context) (context.Context, context.CancelFunc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, nil, spqrerror.New(spqrerror.SPQR_INVALID_STATE, "statement is closed")
	}

	var cancel context.CancelFunc
	if s.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	s.cancel = cancel
	return ctx, cancel, nil
}

func (s *Statement) resetOutcome() {
	s.mu.Lock()
	rs := s.resultSet
	s.resultSet = nil
	s.mu.Unlock()

	if rs != nil {
		_ = rs.Close()
	}
	s.updateCount = -1
	s.generated = nil
}

func (s *Statement) Query(ctx context.Context) (conn.Rows, error) {
	s.resetOutcome()
	ctx, cancel, err := s.callContext(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.stmt.QueryxContext(ctx, s.params...)
	if err != nil {
		cancel()
		return nil, err
	}
	rs := &cursor{Rows: rows, limit: s.maxRows, cancel: cancel}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		_ = rs.Close()
		return nil, spqrerror.New(spqrerror.SPQR_INVALID_STATE, "statement is closed")
	}
	s.resultSet = rs
	return rs, nil
}

func (s *Statement) Exec(ctx context.Context) (int64, error) {
	s.resetOutcome()
	ctx, cancel, err := s.callContext(ctx)
	if err != nil {
		return 0, err
	}
	defer cancel()

	if s.keys.Mode == conn.KeysByColumnNames {
		rows, err := s.stmt.QueryxContext(ctx, s.params...)
		if err != nil {
			return 0, err
		}
		keys, err := tupleslot.Materialize(rows)
		if err != nil {
			return 0, err
		}
		s.generated = keys
		s.updateCount = int64(len(keys.Raw))
		return s.updateCount, nil
	}

	res, err := s.stmt.ExecContext(ctx, s.params...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	s.updateCount = n

	if s.keys.Mode == conn.KeysByFlag {
		s.generated = tupleslot.New([]string{GeneratedKeyColumn})
		if id, err := res.LastInsertId(); err == nil {
			s.generated.WriteDataRow(id)
		} else {
			spqrlog.Zero.Debug().Err(err).Str("shard", s.shardID).Msg("driver reports no last insert id")
		}
	}
	return n, nil
}

// Execute treats statements that start with a row producing keyword, or
// carry a RETURNING clause, as queries.
func (s *Statement) Execute(ctx context.Context) (bool, error) {
	if producesRows(s.sql) && s.keys.Mode != conn.KeysByColumnNames {
		_, err := s.Query(ctx)
		return err == nil, err
	}
	_, err := s.Exec(ctx)
	return false, err
}

func producesRows(query string) bool {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return false
	}
	switch strings.ToUpper(fields[0]) {
	case "SELECT", "WITH", "SHOW", "VALUES", "EXPLAIN", "TABLE":
		return true
	}
	return strings.Contains(strings.ToUpper(query), " RETURNING ")
}

func (s *Statement) ResultSet() conn.Rows {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resultSet
}

func (s *Statement) UpdateCount() int64 {
	return s.updateCount
}

func (s *Statement) GeneratedKeys() (conn.Rows, error) {
	if s.keys.Mode == conn.KeysNone {
		return nil, spqrerror.New(spqrerror.SPQR_INVALID_STATE, "statement was not prepared to return generated keys")
	}
	keys := tupleslot.New([]string{GeneratedKeyColumn})
	if s.keys.Mode == conn.KeysByColumnNames {
		keys = tupleslot.New(s.keys.ColumnNames)
	}
	if s.generated != nil {
		keys.Desc = s.generated.Desc
		keys.Raw = s.generated.Raw
	}
	return keys, nil
}

func (s *Statement) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// Close releases the statement and returns its connection to the pool.
func (s *Statement) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	rs := s.resultSet
	s.resultSet = nil
	s.mu.Unlock()

	var err error
	if rs != nil {
		err = multierr.Append(err, rs.Close())
	}
	err = multierr.Append(err, s.stmt.Close())
	err = multierr.Append(err, s.conn.Close())
	return err
}

// cursor caps the rows read at limit and ends the call context on Close.
type cursor struct {
	*sqlx.Rows
	limit  int
	read   int
	cancel context.CancelFunc
}

func (c *cursor) Next() bool {
	if c.limit > 0 && c.read >= c.limit {
		return false
	}
	if !c.Rows.Next() {
		return false
	}
	c.read++
	return true
}

func (c *cursor) Close() error {
	err := c.Rows.Close()
	c.cancel()
	return err
}
