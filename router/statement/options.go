package statement

import (
	"github.com/pg-sharding/stmtrouter/pkg/conn"
	"github.com/pg-sharding/stmtrouter/pkg/models/spqrerror"
)

type keyOptions struct {
	autoGeneratedKeys bool
	columnIndexes     []int
	columnNames       []string
}

type Option func(*keyOptions)

// WithAutoGeneratedKeys asks physical statements to report the keys the
// database generated for inserted rows.
func WithAutoGeneratedKeys(enabled bool) Option {
	return func(o *keyOptions) {
		o.autoGeneratedKeys = enabled
	}
}

func WithColumnIndexes(indexes ...int) Option {
	return func(o *keyOptions) {
		o.columnIndexes = append([]int(nil), indexes...)
	}
}

func WithColumnNames(names ...string) Option {
	return func(o *keyOptions) {
		o.columnNames = append([]string(nil), names...)
	}
}

// keyRequest resolves options to the single generated key mode. Modes are
// checked flag first, then column indexes, then column names.
func (o *keyOptions) keyRequest() (conn.KeyRequest, error) {
	requested := 0
	if o.autoGeneratedKeys {
		requested++
	}
	if o.columnIndexes != nil {
		requested++
	}
	if o.columnNames != nil {
		requested++
	}
	if requested > 1 {
		return conn.KeyRequest{}, spqrerror.New(spqrerror.SPQR_CONFIGURATION,
			"generated keys may be requested by flag, column indexes or column names, not several of them")
	}

	switch {
	case o.autoGeneratedKeys:
		return conn.KeyRequest{Mode: conn.KeysByFlag}, nil
	case o.columnIndexes != nil:
		return conn.KeyRequest{Mode: conn.KeysByColumnIndexes, ColumnIndexes: o.columnIndexes}, nil
	case o.columnNames != nil:
		return conn.KeyRequest{Mode: conn.KeysByColumnNames, ColumnNames: o.columnNames}, nil
	}
	return conn.KeyRequest{Mode: conn.KeysNone}, nil
}
