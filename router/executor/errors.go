package executor

import (
	"fmt"

	"github.com/pg-sharding/stmtrouter/pkg/models/spqrerror"
	"go.uber.org/multierr"
)

type ShardFailure struct {
	ShardID string
	Err     error
}

// PartialExecutionError reports failed shards while keeping every outcome,
// successful or not, at its execution unit position.
type PartialExecutionError struct {
	Outcomes []Outcome
}

var _ error = &PartialExecutionError{}

func (e *PartialExecutionError) Failures() []ShardFailure {
	var res []ShardFailure
	for _, o := range e.Outcomes {
		if o.Err != nil {
			res = append(res, ShardFailure{ShardID: o.ShardID, Err: o.Err})
		}
	}
	return res
}

// FailedShards lists shard ids of failed outcomes in execution unit order.
func (e *PartialExecutionError) FailedShards() []string {
	var res []string
	for _, f := range e.Failures() {
		res = append(res, f.ShardID)
	}
	return res
}

func (e *PartialExecutionError) Cause() error {
	var err error
	for _, f := range e.Failures() {
		err = multierr.Append(err, fmt.Errorf("shard %q: %w", f.ShardID, f.Err))
	}
	return err
}

func (e *PartialExecutionError) Error() string {
	return fmt.Sprintf("Code: %s. Name: %s. Description: %d of %d shards failed: %v.",
		spqrerror.SPQR_PARTIAL_EXECUTION,
		spqrerror.GetMessageByCode(spqrerror.SPQR_PARTIAL_EXECUTION),
		len(e.Failures()), len(e.Outcomes), e.Cause())
}

// Unwrap exposes the SPQR_PARTIAL_EXECUTION code followed by the shard
// causes.
func (e *PartialExecutionError) Unwrap() []error {
	coded := spqrerror.Newf(spqrerror.SPQR_PARTIAL_EXECUTION,
		"%d of %d shards failed", len(e.Failures()), len(e.Outcomes))
	return append([]error{coded}, multierr.Errors(e.Cause())...)
}
