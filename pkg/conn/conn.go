// Package conn declares the physical side of statement execution: a
// connection provider keyed by shard id, connections checked out from it,
// and the prepared statements created on those connections.
package conn

import (
	"context"
	"time"
)

type KeyMode int

const (
	KeysNone = KeyMode(iota)
	KeysByFlag
	KeysByColumnIndexes
	KeysByColumnNames
)

func (m KeyMode) String() string {
	switch m {
	case KeysNone:
		return "none"
	case KeysByFlag:
		return "flag"
	case KeysByColumnIndexes:
		return "column-indexes"
	case KeysByColumnNames:
		return "column-names"
	}
	return "unknown"
}

// KeyRequest tells Prepare how auto-generated keys are to be retrieved.
type KeyRequest struct {
	Mode          KeyMode
	ColumnIndexes []int
	ColumnNames   []string
}

// Rows is a forward-only cursor. *sql.Rows and *sqlx.Rows satisfy it.
type Rows interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

//go:generate mockgen -source=pkg/conn/conn.go -destination=pkg/mock/conn/conn_mock.go -package=mock_conn
type Provider interface {
	Acquire(ctx context.Context, shardID string) (ShardConn, error)
}

type ShardConn interface {
	ShardID() string
	// Prepare creates a statement owning this connection: closing the
	// statement returns the connection to its provider.
	Prepare(ctx context.Context, query string, keys KeyRequest) (Statement, error)
	// Release returns a connection no statement was prepared on.
	Release() error
}

type Statement interface {
	ShardID() string
	SQL() string

	// SetParam binds value at a 1-based ordinal position.
	SetParam(ordinal int, value any) error
	ClearParams()

	SetFetchSize(rows int) error
	SetQueryTimeout(d time.Duration) error
	SetMaxRows(max int) error

	Query(ctx context.Context) (Rows, error)
	Exec(ctx context.Context) (int64, error)
	// Execute runs the statement whatever its kind and reports whether it
	// produced a result set; the outcome is read with ResultSet or UpdateCount.
	Execute(ctx context.Context) (bool, error)
	ResultSet() Rows
	UpdateCount() int64

	GeneratedKeys() (Rows, error)

	Cancel() error
	Close() error
}
