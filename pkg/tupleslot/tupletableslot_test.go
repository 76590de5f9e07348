package tupleslot_test

import (
	"database/sql"
	"testing"

	"github.com/pg-sharding/stmtrouter/pkg/tupleslot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotIteration(t *testing.T) {
	tts := tupleslot.New([]string{"id", "name"})
	tts.WriteDataRow(int64(1), "a")
	tts.WriteDataRow(int64(2), []byte("b"))

	cols, err := tts.Columns()
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, cols)

	var ids []int
	var names []string
	for tts.Next() {
		var id int
		var name string
		require.NoError(t, tts.Scan(&id, &name))
		ids = append(ids, id)
		names = append(names, name)
	}
	assert.NoError(t, tts.Err())
	assert.Equal(t, []int{1, 2}, ids)
	assert.Equal(t, []string{"a", "b"}, names)
	assert.NoError(t, tts.Close())
	assert.False(t, tts.Next())
}

func TestSlotScanErrors(t *testing.T) {
	tts := tupleslot.New([]string{"id"})
	tts.WriteDataRow(int64(1))

	var id int64
	assert.Error(t, tts.Scan(&id), "scan before next")

	require.True(t, tts.Next())
	assert.Error(t, tts.Scan(&id, &id), "arity mismatch")
	assert.Error(t, tts.Scan(id), "non-pointer destination")

	var s string
	assert.Error(t, tts.Scan(&s), "int into string")
}

func TestSlotScanNullAndScanner(t *testing.T) {
	tts := tupleslot.New([]string{"a", "b"})
	tts.WriteDataRow(nil, int64(7))
	require.True(t, tts.Next())

	var a sql.NullInt64
	var b any
	require.NoError(t, tts.Scan(&a, &b))
	assert.False(t, a.Valid)
	assert.Equal(t, int64(7), b)
}

func TestMaterialize(t *testing.T) {
	src := tupleslot.New([]string{"id"})
	src.WriteDataRow(int64(10))
	src.WriteDataRow(int64(20))

	tts, err := tupleslot.Materialize(src)
	require.NoError(t, err)
	assert.Equal(t, [][]any{{int64(10)}, {int64(20)}}, tts.Raw)

	_, err = src.Columns()
	assert.Error(t, err, "source must be closed")
}
