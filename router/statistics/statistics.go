package statistics

import (
	"sort"
	"sync"
	"time"

	"github.com/caio/go-tdigest"
	"github.com/pg-sharding/stmtrouter/pkg/spqrlog"
)

// Statistics keeps per-shard physical call latency, in milliseconds.
type Statistics struct {
	mu        sync.Mutex
	shardTime map[string]*tdigest.TDigest
	quantiles []float64
}

func New(quantiles []float64) *Statistics {
	return &Statistics{
		shardTime: make(map[string]*tdigest.TDigest),
		quantiles: quantiles,
	}
}

func (s *Statistics) Quantiles() []float64 {
	return s.quantiles
}

func (s *Statistics) RecordShardCall(shard string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	td, ok := s.shardTime[shard]
	if !ok {
		var err error
		td, err = tdigest.New()
		if err != nil {
			spqrlog.Zero.Error().Err(err).Msg("failed to allocate tdigest")
			return
		}
		s.shardTime[shard] = td
	}
	if err := td.Add(float64(d.Microseconds()) / 1000); err != nil {
		spqrlog.Zero.Error().Err(err).Str("shard", shard).Msg("failed to record shard time")
	}
}

// Quantile returns 0 for shards with no recorded calls.
func (s *Statistics) Quantile(shard string, q float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	td, ok := s.shardTime[shard]
	if !ok {
		return 0
	}
	return td.Quantile(q)
}

func (s *Statistics) Count(shard string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	td, ok := s.shardTime[shard]
	if !ok {
		return 0
	}
	return td.Count()
}

func (s *Statistics) Shards() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]string, 0, len(s.shardTime))
	for sh := range s.shardTime {
		res = append(res, sh)
	}
	sort.Strings(res)
	return res
}
