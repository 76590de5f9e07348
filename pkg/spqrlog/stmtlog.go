package spqrlog

import "time"

type StmtType string

const (
	StmtTypeQuery   = StmtType("QUERY")
	StmtTypeUpdate  = StmtType("UPDATE")
	StmtTypeExecute = StmtType("EXECUTE")
	StmtTypeBatch   = StmtType("BATCH")
)

// SLogger disables slow statement logging until ReloadSLogger is called.
var SLogger = NewStmtLogger(-1)

type StmtLogger struct {
	logMinDurationStatement time.Duration
}

func NewStmtLogger(logMinDurationStatement time.Duration) *StmtLogger {
	return &StmtLogger{
		logMinDurationStatement: logMinDurationStatement,
	}
}

func ReloadSLogger(logMinDurationStatement time.Duration) {
	SLogger = NewStmtLogger(logMinDurationStatement)
}

func (s *StmtLogger) shouldLogStatement(t time.Duration) bool {
	return s.logMinDurationStatement != -1 && t > s.logMinDurationStatement
}

// ReportStatement logs a physical shard call that ran longer than the threshold.
func (s *StmtLogger) ReportStatement(typ StmtType, shard string, stmt string, t time.Duration) {
	if s.shouldLogStatement(t) {
		Zero.Info().
			Str("shard", shard).
			Str("stmt", stmt).
			Str("stmt_type", string(typ)).
			Dur("duration", t).
			Msg("log statement")
	}
}
