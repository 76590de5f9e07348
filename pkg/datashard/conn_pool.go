package datashard

import (
	"context"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/pg-sharding/stmtrouter/pkg/config"
	"github.com/pg-sharding/stmtrouter/pkg/conn"
	"github.com/pg-sharding/stmtrouter/pkg/models/spqrerror"
	"github.com/pg-sharding/stmtrouter/pkg/spqrlog"
	retry "github.com/sethvargo/go-retry"
	"go.uber.org/multierr"
)

// Provider hands out connections of the shards it was built with.
type Provider struct {
	shards map[string]*DataShard
}

var _ conn.Provider = &Provider{}

func NewProvider(shards ...*DataShard) *Provider {
	p := &Provider{shards: make(map[string]*DataShard, len(shards))}
	for _, ds := range shards {
		p.shards[ds.ID] = ds
	}
	return p
}

// OpenProvider opens every configured shard; on failure already opened
// shards are closed.
func OpenProvider(ctx context.Context, mapping map[string]*config.Shard) (*Provider, error) {
	p := NewProvider()
	for id, cfg := range mapping {
		ds, err := Open(ctx, id, cfg)
		if err != nil {
			_ = p.Close()
			return nil, err
		}
		p.shards[id] = ds
	}
	return p, nil
}

func (p *Provider) Shards() []string {
	res := make([]string, 0, len(p.shards))
	for id := range p.shards {
		res = append(res, id)
	}
	sort.Strings(res)
	return res
}

func (p *Provider) Acquire(ctx context.Context, shardID string) (conn.ShardConn, error) {
	ds, ok := p.shards[shardID]
	if !ok {
		return nil, spqrerror.Newf(spqrerror.SPQR_NO_DATASHARD, "datashard \"%s\" is not configured", shardID)
	}

	var c *sqlx.Conn
	attempt := 0
	err := retry.Do(ctx, retry.WithMaxRetries(ds.retries, retry.NewFibonacci(ds.retryBase)), func(ctx context.Context) error {
		attempt++
		var err error
		c, err = ds.db.Connx(ctx)
		if err != nil {
			spqrlog.Zero.Debug().
				Err(err).
				Str("shard", shardID).
				Int("attempt", attempt).
				Msg("failed to acquire shard connection")
			if ctx.Err() != nil {
				return err
			}
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, spqrerror.Newf(spqrerror.SPQR_CONNECTION_ERROR, "acquire connection to \"%s\": %w", shardID, err)
	}

	spqrlog.Zero.Debug().Str("shard", shardID).Msg("acquired shard connection")
	return &shardConn{shardID: shardID, driver: ds.db.DriverName(), c: c}, nil
}

func (p *Provider) Close() error {
	var err error
	for _, ds := range p.shards {
		err = multierr.Append(err, ds.Close())
	}
	return err
}
