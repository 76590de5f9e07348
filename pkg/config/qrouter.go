package config

import "fmt"

type QrouterType string

const (
	LocalQrouter = QrouterType("local")
	HashQrouter  = QrouterType("hash")
)

type QRouter struct {
	Mode QrouterType `json:"mode" toml:"mode" yaml:"mode"`

	// DefaultShard serves every statement in local mode.
	DefaultShard string `json:"default_shard" toml:"default_shard" yaml:"default_shard"`

	// ShardingParam is the 1-based ordinal of the bound parameter carrying
	// the sharding key in hash mode.
	ShardingParam int      `json:"sharding_param" toml:"sharding_param" yaml:"sharding_param"`
	HashFunction  string   `json:"hash_function" toml:"hash_function" yaml:"hash_function"`
	ShardOrder    []string `json:"shard_order" toml:"shard_order" yaml:"shard_order"`
}

func (q *QRouter) validate(shards map[string]*Shard) error {
	switch q.Mode {
	case LocalQrouter:
		if q.DefaultShard == "" {
			return fmt.Errorf("local qrouter requires default_shard")
		}
		if _, ok := shards[q.DefaultShard]; !ok {
			return fmt.Errorf("default_shard %q is not configured", q.DefaultShard)
		}
	case HashQrouter:
		if q.ShardingParam < 1 {
			return fmt.Errorf("hash qrouter requires sharding_param >= 1")
		}
		if len(q.ShardOrder) == 0 {
			return fmt.Errorf("hash qrouter requires shard_order")
		}
		for _, id := range q.ShardOrder {
			if _, ok := shards[id]; !ok {
				return fmt.Errorf("shard_order references unknown shard %q", id)
			}
		}
	default:
		return fmt.Errorf("unknown qrouter mode: %v", q.Mode)
	}
	return nil
}
