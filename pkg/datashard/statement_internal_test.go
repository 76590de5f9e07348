package datashard

import (
	"testing"
	"time"

	"github.com/pg-sharding/stmtrouter/pkg/conn"
	"github.com/pg-sharding/stmtrouter/pkg/models/spqrerror"
	"github.com/stretchr/testify/assert"
)

func TestProducesRows(t *testing.T) {
	for _, tt := range []struct {
		query string
		exp   bool
	}{
		{query: "SELECT 1", exp: true},
		{query: "  with t as (select 1) select * from t", exp: true},
		{query: "show server_version", exp: true},
		{query: "INSERT INTO t VALUES (1)", exp: false},
		{query: "insert into t values (1) returning id", exp: true},
		{query: "UPDATE t SET a = 1", exp: false},
		{query: "", exp: false},
	} {
		assert.Equal(t, tt.exp, producesRows(tt.query), tt.query)
	}
}

func TestStatementParams(t *testing.T) {
	assert := assert.New(t)

	s := &Statement{updateCount: -1}
	assert.NoError(s.SetParam(3, "c"))
	assert.NoError(s.SetParam(1, 1))
	assert.Equal([]any{1, nil, "c"}, s.params)

	err := s.SetParam(0, 1)
	assert.True(spqrerror.HasCode(err, spqrerror.SPQR_INVALID_STATE))

	s.ClearParams()
	assert.Empty(s.params)
}

func TestStatementConfigValidation(t *testing.T) {
	assert := assert.New(t)

	s := &Statement{}
	assert.NoError(s.SetFetchSize(100))
	assert.Equal(100, s.FetchSize())
	assert.NoError(s.SetQueryTimeout(time.Second))
	assert.NoError(s.SetMaxRows(10))

	assert.Error(s.SetFetchSize(-1))
	assert.Error(s.SetQueryTimeout(-time.Second))
	assert.Error(s.SetMaxRows(-1))
}

func TestGeneratedKeysRequiresKeyMode(t *testing.T) {
	assert := assert.New(t)

	s := &Statement{}
	_, err := s.GeneratedKeys()
	assert.True(spqrerror.HasCode(err, spqrerror.SPQR_INVALID_STATE))

	s.keys = conn.KeyRequest{Mode: conn.KeysByFlag}
	rows, err := s.GeneratedKeys()
	assert.NoError(err)
	assert.False(rows.Next())
}
