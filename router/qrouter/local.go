package qrouter

import (
	"context"

	"github.com/pg-sharding/stmtrouter/pkg/spqrlog"
	"github.com/pg-sharding/stmtrouter/router/merger"
	"github.com/pg-sharding/stmtrouter/router/route"
	"github.com/pkg/errors"
)

// LocalQrouter sends every statement unchanged to a single shard.
type LocalQrouter struct {
	shardID string
}

var _ QueryRouter = &LocalQrouter{}

func NewLocalQrouter(shardID string) (*LocalQrouter, error) {
	if shardID == "" {
		err := errors.New("local router requires a datashard")
		spqrlog.Zero.Error().Err(err).Msg("")
		return nil, err
	}
	return &LocalQrouter{shardID: shardID}, nil
}

func (l *LocalQrouter) Route(_ context.Context, sql string, _ []any) (*route.RouteResult, error) {
	return route.NewRouteResult(merger.Iterate{}, route.ExecutionUnit{
		ShardID: l.shardID,
		SQL:     sql,
	}), nil
}
