package tupleslot

import (
	"database/sql"
	"fmt"
	"reflect"

	"github.com/pg-sharding/stmtrouter/pkg/conn"
)

// TupleTableSlot is a materialized result set that behaves as a cursor.
type TupleTableSlot struct {
	Desc []string
	Raw  [][]any

	pos    int
	closed bool
}

var _ conn.Rows = &TupleTableSlot{}

func New(desc []string) *TupleTableSlot {
	return &TupleTableSlot{Desc: desc}
}

func (tts *TupleTableSlot) WriteDataRow(vals ...any) {
	tts.Raw = append(tts.Raw, vals)
}

// Materialize drains rows into a slot and closes rows.
func Materialize(rows conn.Rows) (*TupleTableSlot, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	tts := New(cols)
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		tts.Raw = append(tts.Raw, vals)
	}
	return tts, rows.Err()
}

func (tts *TupleTableSlot) Columns() ([]string, error) {
	if tts.closed {
		return nil, fmt.Errorf("rows are closed")
	}
	return tts.Desc, nil
}

func (tts *TupleTableSlot) Next() bool {
	if tts.closed || tts.pos >= len(tts.Raw) {
		return false
	}
	tts.pos++
	return true
}

func (tts *TupleTableSlot) Scan(dest ...any) error {
	if tts.closed {
		return fmt.Errorf("rows are closed")
	}
	if tts.pos == 0 || tts.pos > len(tts.Raw) {
		return fmt.Errorf("scan called without calling next")
	}
	row := tts.Raw[tts.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("expected %d destination arguments in scan, not %d", len(row), len(dest))
	}
	for i, d := range dest {
		if err := assign(d, row[i]); err != nil {
			return fmt.Errorf("scan column %d: %w", i, err)
		}
	}
	return nil
}

func (tts *TupleTableSlot) Err() error {
	return nil
}

func (tts *TupleTableSlot) Close() error {
	tts.closed = true
	return nil
}

func assign(dest any, src any) error {
	if sc, ok := dest.(sql.Scanner); ok {
		return sc.Scan(src)
	}
	if p, ok := dest.(*any); ok {
		*p = src
		return nil
	}

	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Pointer || dv.IsNil() {
		return fmt.Errorf("destination not a pointer")
	}
	elem := dv.Elem()
	if src == nil {
		elem.Set(reflect.Zero(elem.Type()))
		return nil
	}
	sv := reflect.ValueOf(src)
	if sv.Type().AssignableTo(elem.Type()) {
		elem.Set(sv)
		return nil
	}
	if sv.Type().ConvertibleTo(elem.Type()) && sv.Kind() != reflect.String && elem.Kind() != reflect.String {
		elem.Set(sv.Convert(elem.Type()))
		return nil
	}
	if elem.Kind() == reflect.String {
		switch v := src.(type) {
		case []byte:
			elem.SetString(string(v))
			return nil
		case string:
			elem.SetString(v)
			return nil
		}
	}
	return fmt.Errorf("unsupported scan of %T into %T", src, dest)
}
