package config

import "time"

const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

type Shard struct {
	// Driver names a database/sql driver; "pgx" opens a pgx pool instead.
	Driver string `json:"driver" toml:"driver" yaml:"driver"`
	DSN    string `json:"dsn" toml:"dsn" yaml:"dsn"`

	MaxOpenConns int `json:"max_open_conns" toml:"max_open_conns" yaml:"max_open_conns"`

	ConnectRetries   uint64        `json:"connect_retries" toml:"connect_retries" yaml:"connect_retries"`
	ConnectRetryBase time.Duration `json:"connect_retry_base" toml:"connect_retry_base" yaml:"connect_retry_base"`
}
