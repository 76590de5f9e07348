package merger

import (
	"fmt"

	"github.com/pg-sharding/stmtrouter/pkg/conn"
	"go.uber.org/multierr"
)

// iteratorRows walks shard cursors one after another without buffering.
type iteratorRows struct {
	rows []conn.Rows
	cur  int
	err  error
}

var _ conn.Rows = &iteratorRows{}

func newIteratorRows(rows []conn.Rows) *iteratorRows {
	return &iteratorRows{rows: rows}
}

func (it *iteratorRows) Columns() ([]string, error) {
	if len(it.rows) == 0 {
		return nil, nil
	}
	return it.rows[0].Columns()
}

func (it *iteratorRows) Next() bool {
	for it.err == nil && it.cur < len(it.rows) {
		r := it.rows[it.cur]
		if r.Next() {
			return true
		}
		if err := r.Err(); err != nil {
			it.err = err
			return false
		}
		it.cur++
	}
	return false
}

func (it *iteratorRows) Scan(dest ...any) error {
	if it.cur >= len(it.rows) {
		return fmt.Errorf("scan called on exhausted rows")
	}
	return it.rows[it.cur].Scan(dest...)
}

func (it *iteratorRows) Err() error {
	return it.err
}

func (it *iteratorRows) Close() error {
	var err error
	for _, r := range it.rows {
		err = multierr.Append(err, r.Close())
	}
	return err
}
