package server

import (
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/sells-group/prospector-cli/internal/contacts"
	"github.com/sells-group/prospector-cli/internal/tracker"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewMCPServer wires every contact tool into an MCP server instance. This
// is the tool surface consumed by the LLM agent layer; each tool mirrors
// one logical engine operation.
func NewMCPServer(cache *contacts.Cache, trk *tracker.Tracker) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer(
		"prospector",
		Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithRecovery(),
		mcpserver.WithInstructions(serverInstructions),
	)

	queryTool := NewQueryTool(cache)
	s.AddTool(queryTool.Definition(), queryTool.Handle)

	statsTool := NewStatsTool(cache)
	s.AddTool(statsTool.Definition(), statsTool.Handle)

	detailsTool := NewDetailsTool(cache)
	s.AddTool(detailsTool.Definition(), detailsTool.Handle)

	searchTool := NewSearchTool(cache)
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	stateTool := NewUpdateStateTool(trk)
	s.AddTool(stateTool.Definition(), stateTool.Handle)

	interactionTool := NewInteractionTool(trk)
	s.AddTool(interactionTool.Definition(), interactionTool.Handle)

	historyTool := NewHistoryTool(trk)
	s.AddTool(historyTool.Definition(), historyTool.Handle)

	return s
}

const serverInstructions = `You have access to a prospecting contact database.

Use query_contacts for structured filtering (where clauses are AND-combined;
prefer the summary field preset to keep responses small). Use
search_contacts for free-text relevance lookups. Use get_contact_stats to
orient yourself before filtering. Track outreach progress with
update_contact_state and record_interaction; the tracked funnel state is
independent of the contactState derived from the source data.`
