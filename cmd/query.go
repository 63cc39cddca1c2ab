package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/prospector-cli/internal/model"
	"github.com/sells-group/prospector-cli/internal/query"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query and filter contacts",
	Long: `Filters the contact snapshot and prints matching records as JSON.

Simple filters map to flags; arbitrary conditions go through --where,
which takes a JSON array of {field, operator, value} clauses. All
conditions are AND-combined.

Examples:
  # Verified fintech executives
  prospector query --executives --min-score 70 \
    --where '[{"field":"keywords","operator":"arrayContains","value":"fintech"}]'

  # Second page of German contacts, minimal fields
  prospector query --country Germany --preset minimal --limit 50 --offset 50`,
	RunE: runQuery,
}

func init() {
	f := queryCmd.Flags()
	f.String("where", "", "JSON array of filter clauses")
	f.String("state", "", "derived funnel state (NOT_CONTACTED, SENT, REPLIED, ...)")
	f.String("country", "", "country filter")
	f.String("industry", "", "industry filter")
	f.String("seniority", "", "seniority filter")
	f.String("stage", "", "stage filter")
	f.Int("min-score", 0, "minimum quality score")
	f.Bool("executives", false, "executives only")
	f.Bool("not-contacted", false, "only contacts still in NOT_CONTACTED states")
	f.String("preset", "", "field preset: minimal, summary, detailed, full")
	f.StringSlice("include", nil, "extra fields to include")
	f.StringSlice("exclude", nil, "fields to exclude")
	f.Int("limit", 0, "max contacts to return (default 100, max 1000)")
	f.Int("offset", 0, "contacts to skip")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	e, err := initEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	snap, err := e.Cache.Get(ctx)
	if err != nil {
		return err
	}

	result, err := query.Run(snap.Records(), filter)
	if err != nil {
		return err
	}

	if result.Total == 0 {
		fmt.Fprintln(os.Stderr, "No contacts matched.")
	}
	return printJSON(result)
}

func filterFromFlags(cmd *cobra.Command) (*model.ContactFilter, error) {
	f := cmd.Flags()
	filter := &model.ContactFilter{}

	if raw, _ := f.GetString("where"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &filter.Where); err != nil {
			return nil, eris.Wrap(err, "query: parse --where")
		}
	}

	if v, _ := f.GetString("state"); v != "" {
		filter.ContactState = model.ContactState(v)
	}
	if v, _ := f.GetString("country"); v != "" {
		filter.Country = v
	}
	if v, _ := f.GetString("industry"); v != "" {
		filter.Industry = v
	}
	if v, _ := f.GetString("seniority"); v != "" {
		filter.Seniority = v
	}
	if v, _ := f.GetString("stage"); v != "" {
		filter.Stage = v
	}
	if f.Changed("min-score") {
		v, _ := f.GetInt("min-score")
		filter.MinQualityScore = &v
	}
	if f.Changed("executives") {
		v, _ := f.GetBool("executives")
		filter.IsExecutive = &v
	}
	if v, _ := f.GetBool("not-contacted"); v {
		filter.NotContactedOnly = true
	}

	preset, _ := f.GetString("preset")
	filter.FieldPreset = model.FieldPreset(preset)
	filter.IncludeFields, _ = f.GetStringSlice("include")
	filter.ExcludeFields, _ = f.GetStringSlice("exclude")
	filter.Limit, _ = f.GetInt("limit")
	filter.Offset, _ = f.GetInt("offset")

	return filter, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
