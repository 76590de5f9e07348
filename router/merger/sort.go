package merger

import (
	"bytes"
	"fmt"
	"time"
)

type sortableWithContext struct {
	data     [][]any
	colIndex int
	desc     bool
}

func (a sortableWithContext) Len() int      { return len(a.data) }
func (a sortableWithContext) Swap(i, j int) { a.data[i], a.data[j] = a.data[j], a.data[i] }
func (a sortableWithContext) Less(i, j int) bool {
	c := compare(a.data[i][a.colIndex], a.data[j][a.colIndex])
	if a.desc {
		return c > 0
	}
	return c < 0
}

// compare orders NULLs first, numbers numerically and the rest by text.
func compare(l, r any) int {
	if l == nil || r == nil {
		switch {
		case l == nil && r == nil:
			return 0
		case l == nil:
			return -1
		default:
			return 1
		}
	}

	if lf, ok := toFloat(l); ok {
		if rf, ok := toFloat(r); ok {
			switch {
			case lf < rf:
				return -1
			case lf > rf:
				return 1
			}
			return 0
		}
	}

	if lt, ok := l.(time.Time); ok {
		if rt, ok := r.(time.Time); ok {
			return lt.Compare(rt)
		}
	}

	return bytes.Compare(toText(l), toText(r))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func toText(v any) []byte {
	switch s := v.(type) {
	case []byte:
		return s
	case string:
		return []byte(s)
	}
	return []byte(fmt.Sprint(v))
}
