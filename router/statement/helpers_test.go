package statement_test

import (
	"context"
	"testing"

	"github.com/pg-sharding/stmtrouter/pkg/conn"
	mockconn "github.com/pg-sharding/stmtrouter/pkg/mock/conn"
	"github.com/pg-sharding/stmtrouter/pkg/tupleslot"
	"github.com/pg-sharding/stmtrouter/router/executor"
	"github.com/pg-sharding/stmtrouter/router/merger"
	mockqr "github.com/pg-sharding/stmtrouter/router/mock/qrouter"
	"github.com/pg-sharding/stmtrouter/router/route"
	"github.com/pg-sharding/stmtrouter/router/statement"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type env struct {
	ctrl     *gomock.Controller
	router   *mockqr.MockQueryRouter
	provider *mockconn.MockProvider
	sctx     *statement.ShardingContext
}

func newEnv(t *testing.T) *env {
	ctrl := gomock.NewController(t)
	e := &env{
		ctrl:     ctrl,
		router:   mockqr.NewMockQueryRouter(ctrl),
		provider: mockconn.NewMockProvider(ctrl),
	}
	e.sctx = &statement.ShardingContext{
		Router:   e.router,
		Provider: e.provider,
		Executor: executor.NewEngine(4),
		Merger:   merger.NewMerger(),
	}
	return e
}

func (e *env) newStatement(t *testing.T, sql string, opts ...statement.Option) *statement.PreparedStatement {
	t.Helper()
	ps, err := statement.NewPreparedStatement(e.sctx, sql, opts...)
	require.NoError(t, err)
	return ps
}

// expectRoute makes the next Route call for params return units under the
// Iterate directive.
func (e *env) expectRoute(sql string, params []any, units ...route.ExecutionUnit) *gomock.Call {
	return e.router.EXPECT().
		Route(gomock.Any(), sql, params).
		Return(route.NewRouteResult(merger.Iterate{}, units...), nil)
}

// expectStatement expects one connection checkout of shard and one prepare
// of sql on it. The statement must be closed exactly once.
func (e *env) expectStatement(shard, sql string, keys conn.KeyRequest) *mockconn.MockStatement {
	sc := mockconn.NewMockShardConn(e.ctrl)
	st := mockconn.NewMockStatement(e.ctrl)
	e.provider.EXPECT().Acquire(gomock.Any(), shard).Return(sc, nil)
	sc.EXPECT().Prepare(gomock.Any(), sql, keys).Return(st, nil)
	st.EXPECT().ShardID().Return(shard).AnyTimes()
	st.EXPECT().SQL().Return(sql).AnyTimes()
	st.EXPECT().Close().Return(nil).Times(1)
	return st
}

func unit(shard, sql string) route.ExecutionUnit {
	return route.ExecutionUnit{ShardID: shard, SQL: sql}
}

func slotOf(col string, vals ...any) *tupleslot.TupleTableSlot {
	tts := tupleslot.New([]string{col})
	for _, v := range vals {
		tts.WriteDataRow(v)
	}
	return tts
}

func readInts(t *testing.T, rows conn.Rows) []int64 {
	t.Helper()
	var res []int64
	for rows.Next() {
		var v int64
		require.NoError(t, rows.Scan(&v))
		res = append(res, v)
	}
	require.NoError(t, rows.Err())
	return res
}

func blockUntilDone(started chan<- struct{}) func(ctx context.Context) (conn.Rows, error) {
	return func(ctx context.Context) (conn.Rows, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}
}
