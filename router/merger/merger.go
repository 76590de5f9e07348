package merger

import (
	"context"
	"fmt"
	"sort"

	"github.com/pg-sharding/stmtrouter/pkg/conn"
	"github.com/pg-sharding/stmtrouter/pkg/spqrlog"
	"github.com/pg-sharding/stmtrouter/pkg/tupleslot"
	"github.com/pg-sharding/stmtrouter/router/executor"
)

// Iterate concatenates shard cursors in execution unit order.
type Iterate struct{}

// OrderBy sorts the union of shard rows by the 0-based Column.
type OrderBy struct {
	Column int
	Desc   bool
}

//go:generate mockgen -source=router/merger/merger.go -destination=router/mock/merger/merger_mock.go -package=mock_merger
type Merger interface {
	MergeQuery(ctx context.Context, directive any, outcomes []executor.Outcome) (conn.Rows, error)
	MergeUpdate(directive any, outcomes []executor.Outcome) (int64, error)
}

type DefaultMerger struct{}

var _ Merger = DefaultMerger{}

func NewMerger() Merger {
	return DefaultMerger{}
}

func cursors(outcomes []executor.Outcome) []conn.Rows {
	res := make([]conn.Rows, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Rows != nil {
			res = append(res, o.Rows)
		}
	}
	return res
}

func (DefaultMerger) MergeQuery(ctx context.Context, directive any, outcomes []executor.Outcome) (conn.Rows, error) {
	spqrlog.Zero.Debug().
		Interface("directive", directive).
		Int("shards", len(outcomes)).
		Msg("merge query outcomes")

	switch d := directive.(type) {
	case nil, Iterate, *Iterate:
		return newIteratorRows(cursors(outcomes)), nil
	case OrderBy:
		return orderBy(cursors(outcomes), d)
	case *OrderBy:
		return orderBy(cursors(outcomes), *d)
	default:
		return nil, fmt.Errorf("unsupported merge directive %T", directive)
	}
}

// MergeUpdate sums update counts whatever the directive.
func (DefaultMerger) MergeUpdate(directive any, outcomes []executor.Outcome) (int64, error) {
	var total int64
	for _, o := range outcomes {
		if o.UpdateCount > 0 {
			total += o.UpdateCount
		}
	}
	return total, nil
}

func orderBy(rows []conn.Rows, d OrderBy) (conn.Rows, error) {
	var res *tupleslot.TupleTableSlot
	for i, r := range rows {
		tts, err := tupleslot.Materialize(r)
		if err != nil {
			for _, rest := range rows[i+1:] {
				_ = rest.Close()
			}
			return nil, err
		}
		if res == nil {
			res = tupleslot.New(tts.Desc)
		}
		res.Raw = append(res.Raw, tts.Raw...)
	}
	if res == nil {
		return tupleslot.New(nil), nil
	}
	if d.Column < 0 || d.Column >= len(res.Desc) {
		return nil, fmt.Errorf("order by column %d out of range of %d columns", d.Column, len(res.Desc))
	}

	sort.Stable(sortableWithContext{
		data:     res.Raw,
		colIndex: d.Column,
		desc:     d.Desc,
	})
	return res, nil
}
