package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/sells-group/prospector-cli/internal/model"
)

var funnelCmd = &cobra.Command{
	Use:   "funnel",
	Short: "Track outreach progress per contact",
	Long: `Commands for the contact lifecycle tracker.

The tracked funnel state lives in a local store (JSON file or SQLite,
see tracker.driver in config) and is independent of the contactState
derived from the CSV export.

Examples:
  prospector funnel update-state 5f3a... SENT --note "intro email"
  prospector funnel log 5f3a... reply --new-state REPLIED
  prospector funnel history 5f3a...`,
}

// -- funnel update-state --

var funnelUpdateCmd = &cobra.Command{
	Use:   "update-state <contact-id> <new-state>",
	Short: "Record a funnel state transition",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := initEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		note, _ := cmd.Flags().GetString("note")

		result, err := e.Tracker.UpdateState(ctx, args[0], model.ContactState(args[1]), note, nil, time.Time{})
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

// -- funnel log --

var funnelLogCmd = &cobra.Command{
	Use:   "log <contact-id> <type>",
	Short: "Append an interaction to a contact's log",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := initEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		note, _ := cmd.Flags().GetString("note")
		newState, _ := cmd.Flags().GetString("new-state")

		result, err := e.Tracker.RecordInteraction(ctx, args[0], model.Interaction{
			Type:     args[1],
			Note:     note,
			NewState: model.ContactState(newState),
		})
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

// -- funnel history --

var funnelHistoryCmd = &cobra.Command{
	Use:   "history <contact-id>",
	Short: "Show a contact's tracked lifecycle history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := initEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		noInteractions, _ := cmd.Flags().GetBool("no-interactions")
		noStates, _ := cmd.Flags().GetBool("no-states")

		history, err := e.Tracker.GetHistory(ctx, args[0], !noInteractions, !noStates)
		if err != nil {
			return err
		}
		return printJSON(history)
	},
}

func init() {
	funnelUpdateCmd.Flags().String("note", "", "note recorded with the transition")

	funnelLogCmd.Flags().String("note", "", "note recorded with the interaction")
	funnelLogCmd.Flags().String("new-state", "", "funnel state to transition to")

	funnelHistoryCmd.Flags().Bool("no-interactions", false, "omit the interaction log")
	funnelHistoryCmd.Flags().Bool("no-states", false, "omit the state transition log")

	funnelCmd.AddCommand(funnelUpdateCmd)
	funnelCmd.AddCommand(funnelLogCmd)
	funnelCmd.AddCommand(funnelHistoryCmd)
	rootCmd.AddCommand(funnelCmd)
}
