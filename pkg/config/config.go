package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
)

const defaultWorkerPoolSize = 16

type JaegerCfg struct {
	JaegerUrl string `json:"jaeger_url" toml:"jaeger_url" yaml:"jaeger_url"`
	Enabled   bool   `json:"enabled" toml:"enabled" yaml:"enabled"`
}

type Executor struct {
	LogLevel                string `json:"log_level" toml:"log_level" yaml:"log_level"`
	LogFileName             string `json:"log_file" toml:"log_file" yaml:"log_file"`
	PrettyLogging           bool   `json:"pretty_log" toml:"pretty_log" yaml:"pretty_log"`
	LogMinDurationStatement string `json:"log_min_duration_statement" toml:"log_min_duration_statement" yaml:"log_min_duration_statement"`

	// WorkerPoolSize bounds the number of physical calls in flight across
	// every logical statement sharing the executor.
	WorkerPoolSize int       `json:"worker_pool_size" toml:"worker_pool_size" yaml:"worker_pool_size"`
	TimeQuantiles  []float64 `json:"time_quantiles" toml:"time_quantiles" yaml:"time_quantiles"`

	ShardMapping map[string]*Shard `json:"shards" toml:"shards" yaml:"shards"`
	QRouter      QRouter           `json:"qrouter" toml:"qrouter" yaml:"qrouter"`
	JaegerConfig JaegerCfg         `json:"jaeger" toml:"jaeger" yaml:"jaeger"`
}

// LoadExecutorCfg decodes the file at cfgPath (.toml, .yaml or .json),
// applies defaults and validates the result.
func LoadExecutorCfg(cfgPath string) (*Executor, error) {
	file, err := os.Open(cfgPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cfg Executor
	if err := initConfig(file, &cfg); err != nil {
		return nil, errors.Wrapf(err, "decode config %s", cfgPath)
	}

	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Executor) setDefaults() {
	if c.WorkerPoolSize <= 0 {
		c.WorkerPoolSize = defaultWorkerPoolSize
	}
	if len(c.TimeQuantiles) == 0 {
		c.TimeQuantiles = []float64{0.5, 0.9, 0.99}
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.QRouter.Mode == "" {
		c.QRouter.Mode = LocalQrouter
	}
	for _, sh := range c.ShardMapping {
		if sh == nil {
			continue
		}
		if sh.Driver == "" {
			sh.Driver = DriverPostgres
		}
	}
}

func (c *Executor) Validate() error {
	if len(c.ShardMapping) == 0 {
		return fmt.Errorf("no shards configured")
	}
	for id, sh := range c.ShardMapping {
		if sh == nil {
			return fmt.Errorf("shard %q has empty definition", id)
		}
		if sh.DSN == "" {
			return fmt.Errorf("shard %q has no dsn", id)
		}
	}
	if _, err := c.MinDurationStatement(); err != nil {
		return err
	}
	return c.QRouter.validate(c.ShardMapping)
}

// MinDurationStatement parses log_min_duration_statement; empty or "-1" disables slow logging.
func (c *Executor) MinDurationStatement() (time.Duration, error) {
	switch c.LogMinDurationStatement {
	case "", "-1":
		return -1, nil
	}
	d, err := time.ParseDuration(c.LogMinDurationStatement)
	if err != nil {
		return 0, errors.Wrap(err, "parse log_min_duration_statement")
	}
	return d, nil
}

func (c *Executor) String() string {
	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Sprintf("<unprintable config: %v>", err)
	}
	return string(b)
}
