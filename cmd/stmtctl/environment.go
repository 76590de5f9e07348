package main

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pg-sharding/stmtrouter/pkg/config"
	"github.com/pg-sharding/stmtrouter/pkg/datashard"
	"github.com/pg-sharding/stmtrouter/pkg/errcounter"
	"github.com/pg-sharding/stmtrouter/pkg/spqrlog"
	"github.com/pg-sharding/stmtrouter/router/executor"
	"github.com/pg-sharding/stmtrouter/router/merger"
	"github.com/pg-sharding/stmtrouter/router/qrouter"
	"github.com/pg-sharding/stmtrouter/router/statement"
	"github.com/pg-sharding/stmtrouter/router/statistics"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	jaegerlog "github.com/uber/jaeger-client-go/log"
	"github.com/uber/jaeger-lib/metrics"
	"go.uber.org/multierr"
	"golang.org/x/exp/maps"
)

type environment struct {
	sctx     *statement.ShardingContext
	provider *datashard.Provider
	stats    *statistics.Statistics
	errs     *errcounter.Counter
	tracer   io.Closer
}

func newEnvironment(ctx context.Context, cfg *config.Executor) (*environment, error) {
	shards := maps.Keys(cfg.ShardMapping)
	sort.Strings(shards)
	spqrlog.Zero.Info().
		Strs("shards", shards).
		Str("qrouter", string(cfg.QRouter.Mode)).
		Int("worker pool", cfg.WorkerPoolSize).
		Msg("initializing sharding context")

	env := &environment{}
	if cfg.JaegerConfig.Enabled {
		tracer, err := initJaegerTracer(cfg.JaegerConfig)
		if err != nil {
			return nil, err
		}
		env.tracer = tracer
	}

	qr, err := qrouter.NewQrouter(&cfg.QRouter)
	if err != nil {
		_ = env.Close()
		return nil, err
	}
	provider, err := datashard.OpenProvider(ctx, cfg.ShardMapping)
	if err != nil {
		_ = env.Close()
		return nil, err
	}
	env.provider = provider
	env.stats = statistics.New(cfg.TimeQuantiles)
	env.errs = errcounter.New()
	env.sctx = &statement.ShardingContext{
		Router:   qr,
		Provider: provider,
		Executor: executor.NewEngine(cfg.WorkerPoolSize,
			executor.WithStatistics(env.stats),
			executor.WithErrCounter(env.errs)),
		Merger:   merger.NewMerger(),
	}
	return env, nil
}

func (env *environment) prepare(sql string) (*statement.PreparedStatement, error) {
	var opts []statement.Option
	if generatedKeys {
		opts = append(opts, statement.WithAutoGeneratedKeys(true))
	}
	ps, err := statement.NewPreparedStatement(env.sctx, sql, opts...)
	if err != nil {
		return nil, err
	}
	if fetchSize > 0 {
		if err := ps.SetFetchSize(fetchSize); err != nil {
			return nil, err
		}
	}
	if maxRows > 0 {
		if err := ps.SetMaxRows(maxRows); err != nil {
			return nil, err
		}
	}
	if queryTimeout != "" {
		d, err := time.ParseDuration(queryTimeout)
		if err != nil {
			return nil, err
		}
		if err := ps.SetQueryTimeout(d); err != nil {
			return nil, err
		}
	}
	return ps, nil
}

func (env *environment) Close() error {
	var err error
	if env.provider != nil {
		err = multierr.Append(err, env.provider.Close())
	}
	if env.tracer != nil {
		err = multierr.Append(err, env.tracer.Close())
	}
	return err
}

func initJaegerTracer(cfg config.JaegerCfg) (io.Closer, error) {
	jcfg := jaegercfg.Configuration{
		ServiceName: "stmtctl",
		Sampler: &jaegercfg.SamplerConfig{
			Type:              "const",
			Param:             1,
			SamplingServerURL: cfg.JaegerUrl,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans: false,
		},
		Gen128Bit: true,
		Tags: []opentracing.Tag{
			{Key: "span.kind", Value: "client"},
		},
	}

	return jcfg.InitGlobalTracer(
		"stmtctl",
		jaegercfg.Logger(jaegerlog.NullLogger),
		jaegercfg.Metrics(metrics.NullFactory),
	)
}
