package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/prospector-cli/internal/query"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the contact database",
	Long:  "Prints totals, state and stage frequency tables, high-value target counts, and the average quality score.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		e, err := initEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		snap, err := e.Cache.Get(ctx)
		if err != nil {
			return err
		}

		groupBy, _ := cmd.Flags().GetString("group-by")
		return printJSON(query.ComputeStats(snap.Records(), groupBy))
	},
}

func init() {
	statsCmd.Flags().String("group-by", "", "extra frequency breakdown by field (e.g. industry, country)")
	rootCmd.AddCommand(statsCmd)
}
