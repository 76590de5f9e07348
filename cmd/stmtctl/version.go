package main

import (
	"fmt"

	"github.com/pg-sharding/stmtrouter/pkg"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print stmtctl version",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "stmtctl %s\n", pkg.VersionRevision)
		return err
	},
}
