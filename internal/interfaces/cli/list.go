package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	callapp "github.com/ebeckman/gong-mcp/internal/application/call"
	domain "github.com/ebeckman/gong-mcp/internal/domain/call"
)

func newListCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List resources",
	}

	cmd.AddCommand(newListCallsCmd(deps))
	return cmd
}

func newListCallsCmd(deps *Dependencies) *cobra.Command {
	var (
		from  string
		to    string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "calls",
		Short: "List calls",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := callapp.ListCallsInput{Limit: limit}
			if from != "" {
				t, err := time.Parse(time.RFC3339, from)
				if err != nil {
					return fmt.Errorf("invalid --from: %w", err)
				}
				input.From = &t
			}
			if to != "" {
				t, err := time.Parse(time.RFC3339, to)
				if err != nil {
					return fmt.Errorf("invalid --to: %w", err)
				}
				input.To = &t
			}

			out, err := deps.ListCalls.Execute(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("failed to list calls: %w", err)
			}

			switch flagFormat {
			case "json":
				return printJSON(deps, callsToRows(out.Calls))
			default:
				return printCallsTable(deps, out.Calls)
			}
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Only calls starting at or after this RFC3339 time")
	cmd.Flags().StringVar(&to, "to", "", "Only calls starting before this RFC3339 time")
	cmd.Flags().IntVar(&limit, "limit", 20, "Max results (0 = no cap)")

	return cmd
}

// callRow is the JSON shape for CLI output.
type callRow struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Started       string `json:"started,omitempty"`
	Duration      int    `json:"duration"`
	HasTranscript bool   `json:"hasTranscript"`
	Participants  int    `json:"participants"`
}

func callsToRows(calls []*domain.Call) []callRow {
	rows := make([]callRow, len(calls))
	for i, c := range calls {
		rows[i] = callRow{
			ID:            string(c.ID()),
			Title:         c.Title(),
			Started:       c.Started(),
			Duration:      c.Duration(),
			HasTranscript: c.HasTranscript(),
			Participants:  len(c.Participants()),
		}
	}
	return rows
}

func printCallsTable(deps *Dependencies, calls []*domain.Call) error {
	w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tSTARTED\tDURATION\tTRANSCRIPT")
	for _, c := range calls {
		transcript := "no"
		if c.HasTranscript() {
			transcript = "yes"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%ds\t%s\n",
			c.ID(), c.Title(), c.Started(), c.Duration(), transcript)
	}
	return w.Flush()
}
