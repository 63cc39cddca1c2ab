package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/prospector-cli/internal/model"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Inspect individual contacts",
}

var contactShowCmd = &cobra.Command{
	Use:   "show <id-or-email>",
	Short: "Show one contact's full record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		record, ok := snap.Lookup(args[0])
		if !ok {
			return &model.NotFoundError{Kind: "contact", Key: args[0]}
		}
		return printJSON(record)
	},
}

func init() {
	contactCmd.AddCommand(contactShowCmd)
	rootCmd.AddCommand(contactCmd)
}
