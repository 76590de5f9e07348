package statement_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pg-sharding/stmtrouter/pkg/conn"
	mockconn "github.com/pg-sharding/stmtrouter/pkg/mock/conn"
	"github.com/pg-sharding/stmtrouter/pkg/models/spqrerror"
	"github.com/pg-sharding/stmtrouter/router/executor"
	"github.com/pg-sharding/stmtrouter/router/merger"
	mockmerger "github.com/pg-sharding/stmtrouter/router/mock/merger"
	"github.com/pg-sharding/stmtrouter/router/route"
	"github.com/pg-sharding/stmtrouter/router/statement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const selectByID = "SELECT * FROM orders WHERE id = $1"

func TestNewPreparedStatementRequiresCollaborators(t *testing.T) {
	e := newEnv(t)

	for name, sctx := range map[string]*statement.ShardingContext{
		"nil":      nil,
		"router":   {Provider: e.provider, Executor: e.sctx.Executor, Merger: e.sctx.Merger},
		"provider": {Router: e.router, Executor: e.sctx.Executor, Merger: e.sctx.Merger},
		"executor": {Router: e.router, Provider: e.provider, Merger: e.sctx.Merger},
		"merger":   {Router: e.router, Provider: e.provider, Executor: e.sctx.Executor},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := statement.NewPreparedStatement(sctx, selectByID)
			assert.True(t, spqrerror.HasCode(err, spqrerror.SPQR_CONFIGURATION))
		})
	}
}

func TestGeneratedKeyModesAreExclusive(t *testing.T) {
	e := newEnv(t)

	for name, opts := range map[string][]statement.Option{
		"indexes and names": {statement.WithColumnIndexes(1), statement.WithColumnNames("id")},
		"flag and names":    {statement.WithAutoGeneratedKeys(true), statement.WithColumnNames("id")},
		"flag and indexes":  {statement.WithAutoGeneratedKeys(true), statement.WithColumnIndexes(1)},
	} {
		t.Run(name, func(t *testing.T) {
			// The router mock has no expectations: any Route call fails the test.
			_, err := statement.NewPreparedStatement(e.sctx, "INSERT INTO orders (user_id) VALUES ($1)", opts...)
			assert.True(t, spqrerror.HasCode(err, spqrerror.SPQR_CONFIGURATION))
		})
	}

	ps := e.newStatement(t, "INSERT INTO orders (user_id) VALUES ($1)", statement.WithAutoGeneratedKeys(false))
	assert.Equal(t, conn.KeysNone, ps.KeyMode())
	ps = e.newStatement(t, "INSERT INTO orders (user_id) VALUES ($1)", statement.WithColumnNames("id"))
	assert.Equal(t, conn.KeysByColumnNames, ps.KeyMode())
}

func TestRoutedStatementsEmptyBeforeExecute(t *testing.T) {
	e := newEnv(t)
	ps := e.newStatement(t, selectByID)
	require.NoError(t, ps.Bind(42))

	assert.Empty(t, ps.RoutedStatements())
	assert.Empty(t, ps.RoutedStatements())
	assert.False(t, ps.Executed())
	assert.NoError(t, ps.Close())
}

func TestExecuteQueryTwoShards(t *testing.T) {
	assert := assert.New(t)
	e := newEnv(t)
	mrg := mockmerger.NewMockMerger(e.ctrl)
	e.sctx.Merger = mrg

	sqlA := "SELECT * FROM orders WHERE id = $1 AND part = 0"
	sqlB := "SELECT * FROM orders WHERE id = $1 AND part = 1"
	e.expectRoute(selectByID, []any{42}, unit("shardA", sqlA), unit("shardB", sqlB)).Times(1)

	stA := e.expectStatement("shardA", sqlA, conn.KeyRequest{})
	stA.EXPECT().SetParam(1, 42).Return(nil)
	stA.EXPECT().Query(gomock.Any()).DoAndReturn(func(ctx context.Context) (conn.Rows, error) {
		time.Sleep(20 * time.Millisecond)
		return slotOf("id", int64(1)), nil
	})
	stB := e.expectStatement("shardB", sqlB, conn.KeyRequest{})
	stB.EXPECT().SetParam(1, 42).Return(nil)
	stB.EXPECT().Query(gomock.Any()).Return(slotOf("id", int64(2)), nil)

	mrg.EXPECT().MergeQuery(gomock.Any(), merger.Iterate{}, gomock.Any()).
		DoAndReturn(func(ctx context.Context, directive any, outcomes []executor.Outcome) (conn.Rows, error) {
			require.Len(t, outcomes, 2)
			assert.Equal("shardA", outcomes[0].ShardID)
			assert.Equal("shardB", outcomes[1].ShardID)
			return merger.NewMerger().MergeQuery(ctx, directive, outcomes)
		})

	ps := e.newStatement(t, selectByID)
	require.NoError(t, ps.Bind(42))

	rows, err := ps.ExecuteQuery(context.Background())
	require.NoError(t, err)
	assert.Equal([]int64{1, 2}, readInts(t, rows))
	assert.Equal(rows, ps.ResultSet())
	assert.Equal(int64(-1), ps.UpdateCount())

	first := ps.RoutedStatements()
	second := ps.RoutedStatements()
	assert.Len(first, 2)
	assert.Equal(first, second)
	assert.Equal("shardA", first[0].ShardID())
	assert.Equal("shardB", first[1].ShardID())

	assert.NoError(ps.Close())
}

func TestFreshExecuteReplacesRoutedStatements(t *testing.T) {
	assert := assert.New(t)
	e := newEnv(t)
	update := "UPDATE orders SET note = $2 WHERE id = $1"

	e.expectRoute(update, []any{1, "a"}, unit("sh1", update))
	first := e.expectStatement("sh1", update, conn.KeyRequest{})
	first.EXPECT().SetParam(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	first.EXPECT().Exec(gomock.Any()).Return(int64(1), nil)

	e.expectRoute(update, []any{2, "b"}, unit("sh2", update))
	second := e.expectStatement("sh2", update, conn.KeyRequest{})
	second.EXPECT().SetParam(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	second.EXPECT().Exec(gomock.Any()).Return(int64(3), nil)

	ps := e.newStatement(t, update)

	require.NoError(t, ps.SetParameter(2, "a"))
	require.NoError(t, ps.SetParameter(1, 1))
	n, err := ps.ExecuteUpdate(context.Background())
	require.NoError(t, err)
	assert.Equal(int64(1), n)
	assert.Equal([]conn.Statement{first}, ps.RoutedStatements())

	require.NoError(t, ps.Bind(2, "b"))
	n, err = ps.ExecuteUpdate(context.Background())
	require.NoError(t, err)
	assert.Equal(int64(3), n)
	assert.Equal(int64(3), ps.UpdateCount())
	assert.Nil(ps.ResultSet())
	assert.Equal([]conn.Statement{second}, ps.RoutedStatements())

	assert.NoError(ps.Close())
}

func TestExecuteGeneric(t *testing.T) {
	assert := assert.New(t)
	e := newEnv(t)
	del := "DELETE FROM orders WHERE user_id = $1"

	e.expectRoute(del, []any{7}, unit("sh1", del), unit("sh2", del))
	for _, sh := range []string{"sh1", "sh2"} {
		st := e.expectStatement(sh, del, conn.KeyRequest{})
		st.EXPECT().SetParam(1, 7).Return(nil)
		st.EXPECT().Execute(gomock.Any()).Return(false, nil)
		st.EXPECT().UpdateCount().Return(int64(2))
	}

	ps := e.newStatement(t, del)
	require.NoError(t, ps.Bind(7))
	hasRows, err := ps.Execute(context.Background())
	require.NoError(t, err)
	assert.False(hasRows)
	assert.Equal(int64(4), ps.UpdateCount())
	assert.Nil(ps.ResultSet())

	sel := "SELECT id FROM orders"
	e.expectRoute(sel, nil, unit("sh1", sel))
	st := e.expectStatement("sh1", sel, conn.KeyRequest{})
	st.EXPECT().Execute(gomock.Any()).Return(true, nil)
	st.EXPECT().ResultSet().Return(slotOf("id", int64(5)))

	ps2 := e.newStatement(t, sel)
	hasRows, err = ps2.Execute(context.Background())
	require.NoError(t, err)
	assert.True(hasRows)
	assert.Equal(int64(-1), ps2.UpdateCount())
	assert.Equal([]int64{5}, readInts(t, ps2.ResultSet()))

	assert.NoError(ps.Close())
	assert.NoError(ps2.Close())
}

func TestPartialFailureNamesFailedShard(t *testing.T) {
	assert := assert.New(t)
	e := newEnv(t)
	update := "UPDATE orders SET note = 'x'"

	e.expectRoute(update, nil, unit("shardA", update), unit("shardB", update), unit("shardC", update))
	e.expectStatement("shardA", update, conn.KeyRequest{}).EXPECT().Exec(gomock.Any()).Return(int64(1), nil)
	e.expectStatement("shardB", update, conn.KeyRequest{}).EXPECT().Exec(gomock.Any()).Return(int64(0), errors.New("deadlock detected"))
	e.expectStatement("shardC", update, conn.KeyRequest{}).EXPECT().Exec(gomock.Any()).Return(int64(5), nil)

	ps := e.newStatement(t, update)
	_, err := ps.ExecuteUpdate(context.Background())

	var perr *executor.PartialExecutionError
	require.ErrorAs(t, err, &perr)
	assert.Equal([]string{"shardB"}, perr.FailedShards())
	assert.True(spqrerror.HasCode(err, spqrerror.SPQR_PARTIAL_EXECUTION))
	assert.Contains(err.Error(), "deadlock detected")
	require.Len(t, perr.Outcomes, 3)
	assert.Equal(int64(1), perr.Outcomes[0].UpdateCount)
	assert.Equal(int64(5), perr.Outcomes[2].UpdateCount)

	assert.Len(ps.RoutedStatements(), 3)
	assert.NoError(ps.Close())
}

func TestRoutingFailures(t *testing.T) {
	t.Run("router", func(t *testing.T) {
		e := newEnv(t)
		e.router.EXPECT().Route(gomock.Any(), selectByID, gomock.Any()).Return(nil, errors.New("no sharding key"))

		ps := e.newStatement(t, selectByID)
		_, err := ps.ExecuteQuery(context.Background())
		assert.True(t, spqrerror.HasCode(err, spqrerror.SPQR_ROUTING_ERROR))
		assert.Contains(t, err.Error(), selectByID)
		assert.True(t, ps.Executed())
		assert.NoError(t, ps.Close())
	})

	t.Run("acquire", func(t *testing.T) {
		e := newEnv(t)
		e.expectRoute(selectByID, []any{1}, unit("sh1", selectByID), unit("sh2", selectByID))
		e.expectStatement("sh1", selectByID, conn.KeyRequest{}).EXPECT().SetParam(1, 1).Return(nil)
		e.provider.EXPECT().Acquire(gomock.Any(), "sh2").Return(nil, errors.New("connection refused"))

		ps := e.newStatement(t, selectByID)
		require.NoError(t, ps.Bind(1))
		_, err := ps.ExecuteQuery(context.Background())
		assert.True(t, spqrerror.HasCode(err, spqrerror.SPQR_ROUTING_ERROR))
		assert.Contains(t, err.Error(), "sh2")

		// sh1 was prepared before the failure and is released by Close.
		assert.Len(t, ps.RoutedStatements(), 1)
		assert.NoError(t, ps.Close())
	})

	t.Run("prepare", func(t *testing.T) {
		e := newEnv(t)
		e.expectRoute(selectByID, nil, unit("sh1", selectByID))
		sc := mockconn.NewMockShardConn(e.ctrl)
		e.provider.EXPECT().Acquire(gomock.Any(), "sh1").Return(sc, nil)
		sc.EXPECT().Prepare(gomock.Any(), selectByID, conn.KeyRequest{}).Return(nil, errors.New("syntax error"))
		sc.EXPECT().Release().Return(nil)

		ps := e.newStatement(t, selectByID)
		_, err := ps.ExecuteQuery(context.Background())
		assert.True(t, spqrerror.HasCode(err, spqrerror.SPQR_ROUTING_ERROR))
		assert.Empty(t, ps.RoutedStatements())
		assert.NoError(t, ps.Close())
	})
}

func TestSetParameter(t *testing.T) {
	assert := assert.New(t)
	e := newEnv(t)
	ps := e.newStatement(t, selectByID)

	assert.NoError(ps.SetParameter(3, "c"))
	assert.NoError(ps.SetParameter(1, "a"))
	assert.Equal([]any{"a", nil, "c"}, ps.Parameters())

	err := ps.SetParameter(0, "x")
	assert.True(spqrerror.HasCode(err, spqrerror.SPQR_INVALID_STATE))

	params := ps.Parameters()
	params[0] = "changed"
	assert.Equal("a", ps.Parameters()[0])

	assert.NoError(ps.ClearParameters())
	assert.Empty(ps.Parameters())
}

func TestCloseIsTerminal(t *testing.T) {
	assert := assert.New(t)
	e := newEnv(t)

	e.expectRoute(selectByID, []any{1}, unit("sh1", selectByID))
	st := e.expectStatement("sh1", selectByID, conn.KeyRequest{})
	st.EXPECT().SetParam(1, 1).Return(nil)
	st.EXPECT().Query(gomock.Any()).Return(slotOf("id"), nil)

	ps := e.newStatement(t, selectByID)
	require.NoError(t, ps.Bind(1))
	_, err := ps.ExecuteQuery(context.Background())
	require.NoError(t, err)

	assert.NoError(ps.Close())
	assert.NoError(ps.Close())
	assert.True(ps.IsClosed())
	assert.Empty(ps.RoutedStatements())

	for name, call := range map[string]func() error{
		"bind":        func() error { return ps.Bind(2) },
		"set param":   func() error { return ps.SetParameter(1, 2) },
		"add batch":   ps.AddBatch,
		"clear batch": ps.ClearBatch,
		"fetch size":  func() error { return ps.SetFetchSize(10) },
		"query": func() error {
			_, err := ps.ExecuteQuery(context.Background())
			return err
		},
		"update": func() error {
			_, err := ps.ExecuteUpdate(context.Background())
			return err
		},
		"batch": func() error {
			_, err := ps.ExecuteBatch(context.Background())
			return err
		},
	} {
		err := call()
		assert.True(spqrerror.HasCode(err, spqrerror.SPQR_INVALID_STATE), name)
	}
}

func TestCloseDuringMergeClosesRows(t *testing.T) {
	assert := assert.New(t)
	e := newEnv(t)
	mrg := mockmerger.NewMockMerger(e.ctrl)
	e.sctx.Merger = mrg

	e.expectRoute(selectByID, []any{1}, unit("sh1", selectByID))
	st := e.expectStatement("sh1", selectByID, conn.KeyRequest{})
	st.EXPECT().SetParam(1, 1).Return(nil)
	st.EXPECT().Query(gomock.Any()).Return(slotOf("id", int64(1)), nil)

	ps := e.newStatement(t, selectByID)
	rows := mockconn.NewMockRows(e.ctrl)
	rows.EXPECT().Close().Return(nil).Times(1)
	mrg.EXPECT().MergeQuery(gomock.Any(), merger.Iterate{}, gomock.Any()).
		DoAndReturn(func(context.Context, any, []executor.Outcome) (conn.Rows, error) {
			require.NoError(t, ps.Close())
			return rows, nil
		})

	require.NoError(t, ps.Bind(1))
	_, err := ps.ExecuteQuery(context.Background())
	assert.True(spqrerror.HasCode(err, spqrerror.SPQR_INVALID_STATE))
	assert.Nil(ps.ResultSet())
}

func TestCancelAbortsExecution(t *testing.T) {
	e := newEnv(t)

	e.expectRoute(selectByID, nil, unit("sh1", selectByID), unit("sh2", selectByID))
	started := make(chan struct{})
	st1 := e.expectStatement("sh1", selectByID, conn.KeyRequest{})
	st1.EXPECT().Query(gomock.Any()).DoAndReturn(blockUntilDone(started))
	st1.EXPECT().Cancel().Return(nil)
	st2 := e.expectStatement("sh2", selectByID, conn.KeyRequest{})
	st2.EXPECT().Query(gomock.Any()).Return(slotOf("id", int64(1)), nil)
	st2.EXPECT().Cancel().Return(nil)

	ps := e.newStatement(t, selectByID)

	go func() {
		<-started
		assert.NoError(t, ps.Cancel())
	}()

	rows, err := ps.ExecuteQuery(context.Background())
	assert.Nil(t, rows)
	assert.True(t, spqrerror.HasCode(err, spqrerror.SPQR_EXECUTION_CANCELED))
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, ps.Close())
}

func TestCanceledContext(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e.router.EXPECT().Route(gomock.Any(), selectByID, gomock.Any()).
		DoAndReturn(func(ctx context.Context, sql string, params []any) (*route.RouteResult, error) {
			return nil, ctx.Err()
		})

	ps := e.newStatement(t, selectByID)
	_, err := ps.ExecuteQuery(ctx)
	assert.True(t, spqrerror.HasCode(err, spqrerror.SPQR_EXECUTION_CANCELED))
	assert.NoError(t, ps.Close())
}
