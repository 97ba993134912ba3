// Package cli wires the cobra command tree. Commands only talk to
// application use cases through Dependencies; no infrastructure leaks in.
package cli

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	callapp "github.com/ebeckman/gong-mcp/internal/application/call"
	userapp "github.com/ebeckman/gong-mcp/internal/application/user"
	mcpiface "github.com/ebeckman/gong-mcp/internal/interfaces/mcp"
)

// Dependencies groups everything the commands need.
type Dependencies struct {
	ListCalls        *callapp.ListCalls
	GetCall          *callapp.GetCall
	FindUsers        *userapp.FindUsers
	RefreshDirectory *userapp.RefreshDirectory
	MCPServer        *mcpiface.Server
	Out              io.Writer
}

var flagFormat string

func NewRootCmd(deps *Dependencies) *cobra.Command {
	root := &cobra.Command{
		Use:           "gong-mcp",
		Short:         "Gong MCP server and CLI",
		Long:          "Expose Gong calls, transcripts and users as MCP tools, with a CLI for ad-hoc queries.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "table", "Output format: table or json")

	root.AddCommand(
		newServeCmd(deps),
		newListCmd(deps),
		newCallCmd(deps),
		newUsersCmd(deps),
		newVersionCmd(),
	)
	return root
}

func printJSON(deps *Dependencies, v interface{}) error {
	enc := json.NewEncoder(deps.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
