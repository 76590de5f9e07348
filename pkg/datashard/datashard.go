package datashard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pg-sharding/stmtrouter/pkg/config"
	"github.com/pg-sharding/stmtrouter/pkg/spqrlog"
	"github.com/pkg/errors"
)

const defaultConnectRetryBase = 50 * time.Millisecond

// DataShard is the connection pool of one physical database.
type DataShard struct {
	ID string

	db      *sqlx.DB
	pgxPool *pgxpool.Pool

	retries   uint64
	retryBase time.Duration
}

// NewDataShard wraps an already opened pool.
func NewDataShard(id string, db *sqlx.DB) *DataShard {
	return &DataShard{
		ID:        id,
		db:        db,
		retryBase: defaultConnectRetryBase,
	}
}

// Open creates the pool for shard id. The pgx driver gets a native pgx
// pool with driver tracing routed to the process logger; any other driver
// name goes through database/sql.
func Open(ctx context.Context, id string, cfg *config.Shard) (*DataShard, error) {
	ds := &DataShard{
		ID:        id,
		retries:   cfg.ConnectRetries,
		retryBase: cfg.ConnectRetryBase,
	}
	if ds.retryBase <= 0 {
		ds.retryBase = defaultConnectRetryBase
	}

	switch cfg.Driver {
	case config.DriverPgx:
		pcfg, err := pgxpool.ParseConfig(cfg.DSN)
		if err != nil {
			return nil, errors.Wrapf(err, "parse dsn of shard %q", id)
		}
		if cfg.MaxOpenConns > 0 {
			pcfg.MaxConns = int32(cfg.MaxOpenConns)
		}
		pcfg.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   &spqrlog.ZeroTraceLogger{},
			LogLevel: spqrlog.TraceLevel(spqrlog.Zero.GetLevel()),
		}
		pool, err := pgxpool.NewWithConfig(ctx, pcfg)
		if err != nil {
			return nil, errors.Wrapf(err, "open pgx pool of shard %q", id)
		}
		ds.pgxPool = pool
		ds.db = sqlx.NewDb(stdlib.OpenDBFromPool(pool), config.DriverPgx)
	default:
		db, err := sqlx.Open(cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, errors.Wrapf(err, "open shard %q", id)
		}
		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		ds.db = db
	}

	spqrlog.Zero.Info().
		Str("shard", id).
		Str("driver", cfg.Driver).
		Msg("opened datashard")
	return ds, nil
}

// SetConnectRetries bounds how many times Acquire retries a failed
// checkout, backing off from base along the Fibonacci sequence.
func (ds *DataShard) SetConnectRetries(retries uint64, base time.Duration) {
	ds.retries = retries
	if base > 0 {
		ds.retryBase = base
	}
}

func (ds *DataShard) DB() *sqlx.DB {
	return ds.db
}

func (ds *DataShard) Close() error {
	err := ds.db.Close()
	if ds.pgxPool != nil {
		ds.pgxPool.Close()
	}
	return err
}
