package main

import (
	"fmt"

	"github.com/pg-sharding/stmtrouter/pkg/config"
	"github.com/spf13/cobra"
)

type overrideRule struct {
	name     string
	validate func() error
	apply    func()
}

func buildOverrideRules(cfg *config.Executor) []overrideRule {
	return []overrideRule{
		{
			name:  "log-level",
			apply: func() { cfg.LogLevel = logLevel },
		},
		{
			name:  "pretty-log",
			apply: func() { cfg.PrettyLogging = cfg.PrettyLogging || prettyLogging },
		},
		{
			name: "worker-pool-size",
			validate: func() error {
				if workerPoolSize < 1 {
					return fmt.Errorf("must be positive, got %d", workerPoolSize)
				}
				return nil
			},
			apply: func() { cfg.WorkerPoolSize = workerPoolSize },
		},
	}
}

// applyOverrides copies flags set on the command line over cfg. Nothing is
// applied unless every changed flag is valid.
func applyOverrides(cmd *cobra.Command, cfg *config.Executor) error {
	rules := buildOverrideRules(cfg)
	for _, r := range rules {
		if cmd.Flags().Changed(r.name) && r.validate != nil {
			if err := r.validate(); err != nil {
				return fmt.Errorf("%s: %w", r.name, err)
			}
		}
	}
	for _, r := range rules {
		if cmd.Flags().Changed(r.name) {
			r.apply()
		}
	}
	return nil
}
