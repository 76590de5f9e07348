package route

import "fmt"

// ExecutionUnit is one statement text bound for one shard.
type ExecutionUnit struct {
	ShardID string
	SQL     string
}

func (u ExecutionUnit) String() string {
	return fmt.Sprintf("%s: %s", u.ShardID, u.SQL)
}

// RouteResult is produced fresh by every Route call and never mutated.
// MergeDirective is opaque to the executor and handed to the merger as is.
type RouteResult struct {
	ExecutionUnits []ExecutionUnit
	MergeDirective any
}

func NewRouteResult(directive any, units ...ExecutionUnit) *RouteResult {
	return &RouteResult{
		ExecutionUnits: units,
		MergeDirective: directive,
	}
}

// ShardIDs lists target shards in execution unit order.
func (r *RouteResult) ShardIDs() []string {
	ids := make([]string, 0, len(r.ExecutionUnits))
	for _, u := range r.ExecutionUnits {
		ids = append(ids, u.ShardID)
	}
	return ids
}
