package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sells-group/prospector-cli/internal/contacts"
	"github.com/sells-group/prospector-cli/internal/model"
	"github.com/sells-group/prospector-cli/internal/query"
	"github.com/sells-group/prospector-cli/internal/search"
	"github.com/sells-group/prospector-cli/internal/tracker"
)

// toolResultJSON marshals a result payload into a text tool result.
func toolResultJSON(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// QueryTool handles the query_contacts MCP tool.
type QueryTool struct {
	cache *contacts.Cache
}

// NewQueryTool creates a QueryTool.
func NewQueryTool(cache *contacts.Cache) *QueryTool {
	return &QueryTool{cache: cache}
}

// Definition returns the MCP tool definition for query_contacts.
func (t *QueryTool) Definition() mcp.Tool {
	return mcp.NewTool("query_contacts",
		mcp.WithDescription(
			"Query and filter prospect contacts. Filter conditions in 'where' are AND-combined. "+
				"Operators: equals, notEquals, contains, notContains, startsWith, endsWith, gt, gte, lt, lte, "+
				"in, notIn, arrayContains, arrayContainsAny, arrayContainsAll, exists, notExists. "+
				"Example clause: {\"field\": \"keywords\", \"operator\": \"arrayContains\", \"value\": \"fintech\"}.",
		),
		mcp.WithArray("where",
			mcp.Description("Filter clauses, each {field, operator, value?, values?}"),
		),
		mcp.WithString("fieldPreset",
			mcp.Description("Fields to return: minimal, summary (default), detailed, or full"),
		),
		mcp.WithArray("includeFields",
			mcp.Description("Extra field names to add to the preset"),
		),
		mcp.WithArray("excludeFields",
			mcp.Description("Field names to remove from the result (wins over includes)"),
		),
		mcp.WithString("contactState",
			mcp.Description("Filter by derived funnel state (NOT_CONTACTED, SENT, REPLIED, ...)"),
		),
		mcp.WithString("country",
			mcp.Description("Filter by country"),
		),
		mcp.WithString("industry",
			mcp.Description("Filter by industry"),
		),
		mcp.WithNumber("minQualityScore",
			mcp.Description("Minimum quality score (0-100)"),
		),
		mcp.WithBoolean("isExecutive",
			mcp.Description("Filter by executive status"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max contacts to return (default 100, max 1000)"),
		),
		mcp.WithNumber("offset",
			mcp.Description("Number of matching contacts to skip"),
		),
	)
}

// Handle processes the query_contacts tool call. The argument map matches
// the ContactFilter JSON shape, so it round-trips through json.
func (t *QueryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("decode arguments: %v", err)), nil
	}
	var filter model.ContactFilter
	if err := json.Unmarshal(data, &filter); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("decode filter: %v", err)), nil
	}

	snap, err := t.cache.Get(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load contacts: %v", err)), nil
	}

	result, err := query.Run(snap.Records(), &filter)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toolResultJSON(result)
}

// StatsTool handles the get_contact_stats MCP tool.
type StatsTool struct {
	cache *contacts.Cache
}

// NewStatsTool creates a StatsTool.
func NewStatsTool(cache *contacts.Cache) *StatsTool {
	return &StatsTool{cache: cache}
}

// Definition returns the MCP tool definition for get_contact_stats.
func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_contact_stats",
		mcp.WithDescription(
			"Summary statistics over the whole contact database: totals, state and stage "+
				"frequency tables, high-value target counts, and average quality score.",
		),
		mcp.WithString("groupBy",
			mcp.Description("Optional field name for an extra frequency breakdown (e.g. industry, country)"),
		),
	)
}

// Handle processes the get_contact_stats tool call.
func (t *StatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := t.cache.Get(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load contacts: %v", err)), nil
	}
	return toolResultJSON(query.ComputeStats(snap.Records(), req.GetString("groupBy", "")))
}

// DetailsTool handles the get_contact_details MCP tool.
type DetailsTool struct {
	cache *contacts.Cache
}

// NewDetailsTool creates a DetailsTool.
func NewDetailsTool(cache *contacts.Cache) *DetailsTool {
	return &DetailsTool{cache: cache}
}

// Definition returns the MCP tool definition for get_contact_details.
func (t *DetailsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_contact_details",
		mcp.WithDescription("Fetch one contact's full record by id or email."),
		mcp.WithString("key",
			mcp.Required(),
			mcp.Description("Contact id or email address"),
		),
	)
}

// Handle processes the get_contact_details tool call.
func (t *DetailsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := req.GetString("key", "")
	if key == "" {
		return mcp.NewToolResultError("'key' is required"), nil
	}

	snap, err := t.cache.Get(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load contacts: %v", err)), nil
	}

	record, ok := snap.Lookup(key)
	if !ok {
		return toolResultJSON(map[string]any{"found": false, "key": key})
	}
	return toolResultJSON(record)
}

// SearchTool handles the search_contacts MCP tool.
type SearchTool struct {
	cache *contacts.Cache
}

// NewSearchTool creates a SearchTool.
func NewSearchTool(cache *contacts.Cache) *SearchTool {
	return &SearchTool{cache: cache}
}

// Definition returns the MCP tool definition for search_contacts.
func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("search_contacts",
		mcp.WithDescription(
			"Free-text relevance search over contact titles, companies, industries, keywords, "+
				"and technologies. Use query_contacts for structured filtering.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Natural language search query"),
		),
		mcp.WithNumber("topK",
			mcp.Description("Max matches to return (default 20)"),
		),
		mcp.WithNumber("minQualityScore",
			mcp.Description("Only return matches with at least this quality score (0-100)"),
		),
		mcp.WithBoolean("isExecutive",
			mcp.Description("Only return executives (true) or non-executives (false)"),
		),
		mcp.WithString("country",
			mcp.Description("Only return matches from this country"),
		),
	)
}

// Handle processes the search_contacts tool call.
func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := req.GetString("query", "")
	if q == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}
	topK := req.GetInt("topK", 20)

	args := req.GetArguments()
	pre := &model.ContactFilter{Country: req.GetString("country", "")}
	if _, ok := args["minQualityScore"]; ok {
		v := req.GetInt("minQualityScore", 0)
		pre.MinQualityScore = &v
	}
	if _, ok := args["isExecutive"]; ok {
		v := req.GetBool("isExecutive", false)
		pre.IsExecutive = &v
	}
	if err := pre.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	snap, err := t.cache.Get(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load contacts: %v", err)), nil
	}

	result := search.Rank(query.Filter(snap.Records(), pre), q, topK)

	projection := &model.ContactFilter{FieldPreset: model.PresetSummary}
	out := make([]map[string]any, 0, len(result.Matches))
	for _, m := range result.Matches {
		fields := query.Project(&m.Record, projection)
		fields["relevance"] = m.Relevance
		out = append(out, fields)
	}

	return toolResultJSON(map[string]any{
		"contacts": out,
		"total":    len(out),
		"query":    result.Query,
		"tokens":   result.Tokens,
	})
}

// UpdateStateTool handles the update_contact_state MCP tool.
type UpdateStateTool struct {
	tracker *tracker.Tracker
}

// NewUpdateStateTool creates an UpdateStateTool.
func NewUpdateStateTool(trk *tracker.Tracker) *UpdateStateTool {
	return &UpdateStateTool{tracker: trk}
}

// Definition returns the MCP tool definition for update_contact_state.
func (t *UpdateStateTool) Definition() mcp.Tool {
	return mcp.NewTool("update_contact_state",
		mcp.WithDescription(
			"Record a funnel state transition for a contact. States: NOT_CONTACTED, "+
				"INTERESTED_NOT_CONTACTED, SENT, OPENED, BOUNCED, REPLIED, DEMOED, INCOMPLETE.",
		),
		mcp.WithString("contactId",
			mcp.Required(),
			mcp.Description("Contact id"),
		),
		mcp.WithString("newState",
			mcp.Required(),
			mcp.Description("Target funnel state"),
		),
		mcp.WithString("note",
			mcp.Description("Optional note recorded with the transition"),
		),
	)
}

// Handle processes the update_contact_state tool call.
func (t *UpdateStateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	contactID := req.GetString("contactId", "")
	if contactID == "" {
		return mcp.NewToolResultError("'contactId' is required"), nil
	}
	newState := model.ContactState(req.GetString("newState", ""))
	note := req.GetString("note", "")

	result, err := t.tracker.UpdateState(ctx, contactID, newState, note, nil, time.Time{})
	if err != nil {
		return trackerError(err)
	}
	return toolResultJSON(result)
}

// InteractionTool handles the record_interaction MCP tool.
type InteractionTool struct {
	tracker *tracker.Tracker
}

// NewInteractionTool creates an InteractionTool.
func NewInteractionTool(trk *tracker.Tracker) *InteractionTool {
	return &InteractionTool{tracker: trk}
}

// Definition returns the MCP tool definition for record_interaction.
func (t *InteractionTool) Definition() mcp.Tool {
	return mcp.NewTool("record_interaction",
		mcp.WithDescription(
			"Append a typed interaction event (email_sent, call, demo, reply, ...) to a "+
				"contact's log. Optionally advances the tracked funnel state.",
		),
		mcp.WithString("contactId",
			mcp.Required(),
			mcp.Description("Contact id"),
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Interaction type"),
		),
		mcp.WithString("note",
			mcp.Description("Optional note"),
		),
		mcp.WithString("newState",
			mcp.Description("Optional funnel state to transition to"),
		),
	)
}

// Handle processes the record_interaction tool call.
func (t *InteractionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	contactID := req.GetString("contactId", "")
	if contactID == "" {
		return mcp.NewToolResultError("'contactId' is required"), nil
	}

	in := model.Interaction{
		Type:     req.GetString("type", ""),
		Note:     req.GetString("note", ""),
		NewState: model.ContactState(req.GetString("newState", "")),
	}

	result, err := t.tracker.RecordInteraction(ctx, contactID, in)
	if err != nil {
		return trackerError(err)
	}
	return toolResultJSON(result)
}

// HistoryTool handles the get_contact_history MCP tool.
type HistoryTool struct {
	tracker *tracker.Tracker
}

// NewHistoryTool creates a HistoryTool.
func NewHistoryTool(trk *tracker.Tracker) *HistoryTool {
	return &HistoryTool{tracker: trk}
}

// Definition returns the MCP tool definition for get_contact_history.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("get_contact_history",
		mcp.WithDescription(
			"Fetch a contact's tracked lifecycle history. Contacts never tracked return "+
				"found=false with state UNKNOWN.",
		),
		mcp.WithString("contactId",
			mcp.Required(),
			mcp.Description("Contact id"),
		),
		mcp.WithBoolean("includeInteractions",
			mcp.Description("Include the interaction log (default true)"),
		),
		mcp.WithBoolean("includeStateHistory",
			mcp.Description("Include the state transition log (default true)"),
		),
	)
}

// Handle processes the get_contact_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	contactID := req.GetString("contactId", "")
	if contactID == "" {
		return mcp.NewToolResultError("'contactId' is required"), nil
	}

	history, err := t.tracker.GetHistory(ctx, contactID,
		req.GetBool("includeInteractions", true),
		req.GetBool("includeStateHistory", true),
	)
	if err != nil {
		return trackerError(err)
	}
	return toolResultJSON(history)
}

// trackerError renders tracker failures as recoverable tool results. A
// missing contact reports previousState UNKNOWN so the agent can reason
// about it without retrying blindly.
func trackerError(err error) (*mcp.CallToolResult, error) {
	var nfe *model.NotFoundError
	if errors.As(err, &nfe) {
		return toolResultJSON(map[string]any{
			"success":       false,
			"error":         nfe.Error(),
			"previousState": string(model.StateUnknown),
		})
	}
	return mcp.NewToolResultError(err.Error()), nil
}
