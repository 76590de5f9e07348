package statement

import (
	"time"

	"github.com/pg-sharding/stmtrouter/pkg/conn"
)

type configOption int

const (
	optFetchSize = configOption(iota)
	optQueryTimeout
	optMaxRows
)

func (o configOption) String() string {
	switch o {
	case optFetchSize:
		return "fetch_size"
	case optQueryTimeout:
		return "query_timeout"
	case optMaxRows:
		return "max_rows"
	}
	return "unknown"
}

// configCall is one recorded configuration call, applied again to every
// physical statement created afterwards.
type configCall struct {
	opt   configOption
	value any
}

var applyConfig = map[configOption]func(conn.Statement, any) error{
	optFetchSize: func(s conn.Statement, v any) error {
		return s.SetFetchSize(v.(int))
	},
	optQueryTimeout: func(s conn.Statement, v any) error {
		return s.SetQueryTimeout(v.(time.Duration))
	},
	optMaxRows: func(s conn.Statement, v any) error {
		return s.SetMaxRows(v.(int))
	},
}

func (c configCall) apply(s conn.Statement) error {
	return applyConfig[c.opt](s, c.value)
}

func replayConfig(s conn.Statement, calls []configCall) error {
	for _, c := range calls {
		if err := c.apply(s); err != nil {
			return err
		}
	}
	return nil
}
