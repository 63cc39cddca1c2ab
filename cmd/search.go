package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/prospector-cli/internal/model"
	"github.com/sells-group/prospector-cli/internal/query"
	"github.com/sells-group/prospector-cli/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Free-text relevance search over contacts",
	Long:  "Ranks contacts by how many query keywords appear in their title, company, industry, keywords, and technologies.",
	Args:  cobra.MinimumNArgs(1),
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

		f := cmd.Flags()
		pre := &model.ContactFilter{}
		pre.Country, _ = f.GetString("country")
		if f.Changed("min-score") {
			v, _ := f.GetInt("min-score")
			pre.MinQualityScore = &v
		}
		if f.Changed("executives") {
			v, _ := f.GetBool("executives")
			pre.IsExecutive = &v
		}
		if err := pre.Validate(); err != nil {
			return err
		}

		topK, _ := f.GetInt("top")
		result := search.Rank(query.Filter(snap.Records(), pre), strings.Join(args, " "), topK)
		if len(result.Matches) == 0 {
			fmt.Fprintln(os.Stderr, "No matches.")
			return nil
		}

		projection := &model.ContactFilter{FieldPreset: model.PresetSummary}
		out := make([]map[string]any, 0, len(result.Matches))
		for _, m := range result.Matches {
			fields := query.Project(&m.Record, projection)
			fields["relevance"] = m.Relevance
			out = append(out, fields)
		}
		return printJSON(map[string]any{
			"contacts": out,
			"total":    len(out),
			"tokens":   result.Tokens,
		})
	},
}

func init() {
	searchCmd.Flags().Int("top", 20, "max matches to return")
	searchCmd.Flags().Int("min-score", 0, "only return matches with at least this quality score")
	searchCmd.Flags().Bool("executives", false, "only return executives (or non-executives with =false)")
	searchCmd.Flags().String("country", "", "only return matches from this country")
	rootCmd.AddCommand(searchCmd)
}
