package qrouter

import (
	"context"

	"github.com/pg-sharding/stmtrouter/pkg/config"
	"github.com/pg-sharding/stmtrouter/pkg/models/hashfunction"
	"github.com/pg-sharding/stmtrouter/pkg/spqrlog"
	"github.com/pg-sharding/stmtrouter/router/merger"
	"github.com/pg-sharding/stmtrouter/router/route"
	"github.com/pkg/errors"
)

// HashQrouter picks a shard by hashing one bound parameter. Statements that
// do not carry the parameter are scattered to every shard.
type HashQrouter struct {
	shards []string
	param  int
	hf     hashfunction.HashFunctionType
}

var _ QueryRouter = &HashQrouter{}

func NewHashQrouter(cfg *config.QRouter) (*HashQrouter, error) {
	if len(cfg.ShardOrder) == 0 {
		return nil, errors.New("hash router requires at least one datashard")
	}
	if cfg.ShardingParam < 1 {
		return nil, errors.Errorf("invalid sharding param ordinal %d", cfg.ShardingParam)
	}
	hf, err := hashfunction.HashFunctionByName(cfg.HashFunction)
	if err != nil {
		return nil, err
	}
	return &HashQrouter{
		shards: append([]string(nil), cfg.ShardOrder...),
		param:  cfg.ShardingParam,
		hf:     hf,
	}, nil
}

func (h *HashQrouter) Route(_ context.Context, sql string, params []any) (*route.RouteResult, error) {
	if len(params) < h.param || params[h.param-1] == nil {
		spqrlog.Zero.Debug().
			Str("sql", sql).
			Int("shards", len(h.shards)).
			Msg("no sharding key bound, scatter statement")

		units := make([]route.ExecutionUnit, 0, len(h.shards))
		for _, sh := range h.shards {
			units = append(units, route.ExecutionUnit{ShardID: sh, SQL: sql})
		}
		return route.NewRouteResult(merger.Iterate{}, units...), nil
	}

	key, err := hashfunction.ApplyHashFunction(params[h.param-1], h.hf)
	if err != nil {
		return nil, errors.Wrap(MatchShardError, err.Error())
	}
	shard := h.shards[key%uint64(len(h.shards))]

	spqrlog.Zero.Debug().
		Str("sql", sql).
		Uint64("key", key).
		Str("shard", shard).
		Msg("matched datashard")

	return route.NewRouteResult(merger.Iterate{}, route.ExecutionUnit{ShardID: shard, SQL: sql}), nil
}
