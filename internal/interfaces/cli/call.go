package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	callapp "github.com/ebeckman/gong-mcp/internal/application/call"
	transcriptapp "github.com/ebeckman/gong-mcp/internal/application/transcript"
	domain "github.com/ebeckman/gong-mcp/internal/domain/call"
)

func newCallCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call",
		Short: "Inspect individual calls",
	}

	cmd.AddCommand(newCallGetCmd(deps))
	return cmd
}

func newCallGetCmd(deps *Dependencies) *cobra.Command {
	var (
		withTranscript   bool
		transcriptFormat string
		maxSegments      int
		maxSentences     int
	)

	cmd := &cobra.Command{
		Use:   "get <call_id>",
		Short: "Get call details, optionally with the transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := deps.GetCall.Execute(cmd.Context(), callapp.GetCallInput{
				CallID:            domain.ID(args[0]),
				IncludeTranscript: withTranscript,
				TranscriptFormat:  transcriptapp.Format(transcriptFormat),
				MaxSegments:       maxSegments,
				MaxSentences:      maxSentences,
			})
			if err != nil {
				return fmt.Errorf("failed to get call: %w", err)
			}

			c := out.Call
			_, _ = fmt.Fprintf(deps.Out, "Call:    %s\n", c.ID())
			_, _ = fmt.Fprintf(deps.Out, "Title:   %s\n", c.Title())
			if c.Started() != "" {
				_, _ = fmt.Fprintf(deps.Out, "Started: %s\n", c.Started())
			}
			_, _ = fmt.Fprintf(deps.Out, "Duration: %ds\n", c.Duration())
			if len(c.Participants()) > 0 {
				_, _ = fmt.Fprintln(deps.Out, "Participants:")
				for _, p := range c.Participants() {
					line := "  - " + p.DisplayName()
					if p.Email() != "" {
						line += " <" + p.Email() + ">"
					}
					_, _ = fmt.Fprintln(deps.Out, line)
				}
			}

			if out.Transcript != nil {
				_, _ = fmt.Fprintln(deps.Out, "")
				return printJSON(deps, out.Transcript.Payload())
			}
			if withTranscript {
				_, _ = fmt.Fprintln(deps.Out, "\n(no transcript available)")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withTranscript, "transcript", false, "Include the transcript")
	cmd.Flags().StringVar(&transcriptFormat, "transcript-format", "concise", "Transcript format: raw, concise or full")
	cmd.Flags().IntVar(&maxSegments, "max-segments", 0, "Cap transcript segments (0 = all)")
	cmd.Flags().IntVar(&maxSentences, "max-sentences", 0, "Cap sentences per exchange (0 = all)")

	return cmd
}
