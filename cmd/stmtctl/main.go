package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pg-sharding/stmtrouter/pkg/config"
	"github.com/pg-sharding/stmtrouter/pkg/spqrlog"
	"github.com/pg-sharding/stmtrouter/router/statement"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	cfgPath        string
	logLevel       string
	prettyLogging  bool
	workerPoolSize int

	sqlText       string
	params        []string
	batchSets     []string
	generatedKeys bool
	fetchSize     int
	maxRows       int
	queryTimeout  string
)

var rootCmd = &cobra.Command{
	Use:   "stmtctl query|exec|batch --config `path-to-config` --sql `statement`",
	Short: "stmtctl",
	Long:  "stmtctl runs one sharded prepared statement against the configured shards",
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "/etc/stmtrouter/config.yaml", "path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "overrides log_level of config")
	rootCmd.PersistentFlags().BoolVar(&prettyLogging, "pretty-log", false, "write logs in human readable form")
	rootCmd.PersistentFlags().IntVar(&workerPoolSize, "worker-pool-size", 0, "overrides worker_pool_size of config")

	for _, cmd := range []*cobra.Command{queryCmd, execCmd, batchCmd} {
		cmd.Flags().StringVarP(&sqlText, "sql", "s", "", "statement to run")
		cmd.Flags().BoolVar(&generatedKeys, "generated-keys", false, "print keys generated by the statement")
		cmd.Flags().IntVar(&fetchSize, "fetch-size", 0, "fetch size of physical statements")
		cmd.Flags().IntVar(&maxRows, "max-rows", 0, "max rows read from each shard, 0 is unlimited")
		cmd.Flags().StringVar(&queryTimeout, "timeout", "", "query timeout of physical statements, e.g. 5s")
		_ = cmd.MarkFlagRequired("sql")
	}
	for _, cmd := range []*cobra.Command{queryCmd, execCmd} {
		cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "positional parameter, repeat for each placeholder")
	}
	batchCmd.Flags().StringArrayVar(&batchSets, "set", nil, "comma separated parameter set, repeat for each batch entry")

	rootCmd.AddCommand(queryCmd, execCmd, batchCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "run a statement returning rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatement(cmd, func(ctx context.Context, ps *statement.PreparedStatement, out io.Writer) error {
			if err := ps.Bind(parseParams(params)...); err != nil {
				return err
			}
			rows, err := ps.ExecuteQuery(ctx)
			if err != nil {
				return err
			}
			return printRows(out, rows)
		})
	},
}

var execCmd = &cobra.Command{
	Use:   "exec",
	Short: "run a statement of any kind",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatement(cmd, func(ctx context.Context, ps *statement.PreparedStatement, out io.Writer) error {
			if err := ps.Bind(parseParams(params)...); err != nil {
				return err
			}
			hasRows, err := ps.Execute(ctx)
			if err != nil {
				return err
			}
			if hasRows {
				return printRows(out, ps.ResultSet())
			}
			_, err = fmt.Fprintf(out, "UPDATE %d\n", ps.UpdateCount())
			return err
		})
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "run a statement once per parameter set",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatement(cmd, func(ctx context.Context, ps *statement.PreparedStatement, out io.Writer) error {
			for _, set := range batchSets {
				if err := ps.Bind(parseSet(set)...); err != nil {
					return err
				}
				if err := ps.AddBatch(); err != nil {
					return err
				}
			}
			counts, err := ps.ExecuteBatch(ctx)
			if err != nil {
				return err
			}
			return printCounts(out, counts)
		})
	},
}

type statementFunc func(ctx context.Context, ps *statement.PreparedStatement, out io.Writer) error

func runStatement(cmd *cobra.Command, f statementFunc) error {
	cfg, err := config.LoadExecutorCfg(cfgPath)
	if err != nil {
		return err
	}
	if err := applyOverrides(cmd, cfg); err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}
	spqrlog.Zero.Debug().Str("config", cfg.String()).Msg("loaded config")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	env, err := newEnvironment(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := env.Close(); err != nil {
			spqrlog.Zero.Error().Err(err).Msg("failed to close shards")
		}
	}()

	ps, err := env.prepare(sqlText)
	if err != nil {
		return err
	}
	defer func() {
		if err := ps.Close(); err != nil {
			spqrlog.Zero.Error().Err(err).Msg("failed to close statement")
		}
	}()

	out := cmd.OutOrStdout()
	if err := f(ctx, ps, out); err != nil {
		printErrorCounts(cmd.ErrOrStderr(), env.errs.ErrorCounts())
		return errors.Wrap(err, "statement failed")
	}
	if generatedKeys {
		keys, err := ps.GeneratedKeys(ctx)
		if err != nil {
			return err
		}
		if err := printRows(out, keys); err != nil {
			return err
		}
	}
	return printStatistics(out, env.stats)
}

func setupLogging(cfg *config.Executor) error {
	spqrlog.ReloadLogger(cfg.LogFileName, cfg.PrettyLogging)
	if err := spqrlog.UpdateZeroLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	d, err := cfg.MinDurationStatement()
	if err != nil {
		return err
	}
	spqrlog.ReloadSLogger(d)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		spqrlog.Zero.Error().Err(err).Msg("")
		os.Exit(1)
	}
}
