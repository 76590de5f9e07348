package qrouter

import (
	"context"
	"fmt"

	"github.com/pg-sharding/stmtrouter/pkg/config"
	"github.com/pg-sharding/stmtrouter/router/route"
	"github.com/pkg/errors"
)

var MatchShardError = fmt.Errorf("failed to match datashard")

// QueryRouter decides which shards run a statement. Route may update
// shared merge state, so callers invoke it only for statements that are
// about to execute.
//
//go:generate mockgen -source=router/qrouter/qrouter.go -destination=router/mock/qrouter/qrouter_mock.go -package=mock_qrouter
type QueryRouter interface {
	Route(ctx context.Context, sql string, params []any) (*route.RouteResult, error)
}

func NewQrouter(cfg *config.QRouter) (QueryRouter, error) {
	switch cfg.Mode {
	case config.LocalQrouter:
		return NewLocalQrouter(cfg.DefaultShard)
	case config.HashQrouter:
		return NewHashQrouter(cfg)
	default:
		return nil, errors.Errorf("unknown qrouter type: %v", cfg.Mode)
	}
}
