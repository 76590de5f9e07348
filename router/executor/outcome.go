package executor

import (
	"github.com/pg-sharding/stmtrouter/pkg/conn"
	"github.com/pg-sharding/stmtrouter/pkg/spqrlog"
	"github.com/pg-sharding/stmtrouter/router/route"
)

type Kind int

const (
	KindQuery = Kind(iota)
	KindUpdate
	KindExecute
)

func (k Kind) String() string {
	switch k {
	case KindQuery:
		return "query"
	case KindUpdate:
		return "update"
	case KindExecute:
		return "execute"
	}
	return "unknown"
}

func (k Kind) stmtType() spqrlog.StmtType {
	switch k {
	case KindQuery:
		return spqrlog.StmtTypeQuery
	case KindUpdate:
		return spqrlog.StmtTypeUpdate
	default:
		return spqrlog.StmtTypeExecute
	}
}

// StatementHandle is a bound physical statement for one execution unit.
// Params is a private copy of the parameters bound on Stmt.
type StatementHandle struct {
	Unit   route.ExecutionUnit
	Params []any
	Stmt   conn.Statement
}

func NewStatementHandle(unit route.ExecutionUnit, params []any, stmt conn.Statement) *StatementHandle {
	cp := make([]any, len(params))
	copy(cp, params)
	return &StatementHandle{
		Unit:   unit,
		Params: cp,
		Stmt:   stmt,
	}
}

// Outcome is the result of one physical call. Rows is set for queries and
// for executes that produced a result set; UpdateCount is -1 in that case.
type Outcome struct {
	ShardID      string
	Rows         conn.Rows
	UpdateCount  int64
	HasResultSet bool
	Err          error
}

func closeOutcomes(outcomes []Outcome) {
	for _, o := range outcomes {
		if o.Rows == nil {
			continue
		}
		if err := o.Rows.Close(); err != nil {
			spqrlog.Zero.Debug().Err(err).Str("shard", o.ShardID).Msg("failed to close shard rows")
		}
	}
}
