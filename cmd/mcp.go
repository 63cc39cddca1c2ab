package main

import (
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/prospector-cli/internal/server"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve contact tools over MCP on stdio",
	Long:  "Exposes the query engine, search, stats, and lifecycle tracker as MCP tools for LLM agents. Communicates over stdin/stdout.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := initEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		s := server.NewMCPServer(e.Cache, e.Tracker)

		zap.L().Info("starting MCP server on stdio")
		if err := mcpserver.ServeStdio(s); err != nil {
			return eris.Wrap(err, "mcp: serve")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
