package statement_test

import (
	"context"
	"testing"
	"time"

	"github.com/pg-sharding/stmtrouter/pkg/conn"
	"github.com/pg-sharding/stmtrouter/pkg/models/spqrerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConfigIsReplayedBeforeBinding(t *testing.T) {
	assert := assert.New(t)
	e := newEnv(t)

	e.expectRoute(selectByID, []any{42}, unit("sh1", selectByID), unit("sh2", selectByID))
	var stmts []conn.Statement
	for _, sh := range []string{"sh1", "sh2"} {
		st := e.expectStatement(sh, selectByID, conn.KeyRequest{})
		gomock.InOrder(
			st.EXPECT().SetFetchSize(100).Return(nil),
			st.EXPECT().SetQueryTimeout(time.Second).Return(nil),
			st.EXPECT().SetFetchSize(200).Return(nil),
			st.EXPECT().SetParam(1, 42).Return(nil),
			st.EXPECT().Query(gomock.Any()).Return(slotOf("id"), nil),
			st.EXPECT().SetMaxRows(10).Return(nil),
		)
		stmts = append(stmts, st)
	}

	ps := e.newStatement(t, selectByID)
	require.NoError(t, ps.SetFetchSize(100))
	require.NoError(t, ps.SetQueryTimeout(time.Second))
	require.NoError(t, ps.SetFetchSize(200))
	require.NoError(t, ps.Bind(42))

	_, err := ps.ExecuteQuery(context.Background())
	require.NoError(t, err)
	assert.Equal(stmts, ps.RoutedStatements())

	// Set after execution: applied to the live physical statements too.
	require.NoError(t, ps.SetMaxRows(10))

	assert.Equal(200, ps.FetchSize())
	assert.Equal(time.Second, ps.QueryTimeout())
	assert.Equal(10, ps.MaxRows())
	assert.NoError(ps.Close())
}

func TestConfigRejectsNegativeValues(t *testing.T) {
	assert := assert.New(t)
	e := newEnv(t)
	ps := e.newStatement(t, selectByID)

	assert.True(spqrerror.HasCode(ps.SetFetchSize(-1), spqrerror.SPQR_INVALID_STATE))
	assert.True(spqrerror.HasCode(ps.SetQueryTimeout(-time.Second), spqrerror.SPQR_INVALID_STATE))
	assert.True(spqrerror.HasCode(ps.SetMaxRows(-1), spqrerror.SPQR_INVALID_STATE))
	assert.Equal(0, ps.FetchSize())
	assert.Equal(time.Duration(0), ps.QueryTimeout())
	assert.Equal(0, ps.MaxRows())
}
