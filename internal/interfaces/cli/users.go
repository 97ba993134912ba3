package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	userapp "github.com/ebeckman/gong-mcp/internal/application/user"
)

func newUsersCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Query the user directory",
	}

	cmd.AddCommand(
		newUsersFindCmd(deps),
		newUsersRefreshCmd(deps),
	)
	return cmd
}

func newUsersFindCmd(deps *Dependencies) *cobra.Command {
	var (
		name  string
		email string
		id    string
	)

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find users by name, email or id",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := deps.FindUsers.Execute(cmd.Context(), userapp.FindUsersInput{
				Name:  name,
				Email: email,
				ID:    id,
			})
			if err != nil {
				return fmt.Errorf("failed to find users: %w", err)
			}

			switch flagFormat {
			case "json":
				rows := make([]userRow, len(out.Users))
				for i, u := range out.Users {
					rows[i] = userRow{
						ID:      u.ID(),
						Name:    u.FullName(),
						Email:   u.Email(),
						Title:   u.Title(),
						Active:  u.Active(),
						Created: u.Created(),
					}
				}
				return printJSON(deps, rows)
			default:
				w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
				_, _ = fmt.Fprintln(w, "ID\tNAME\tEMAIL\tTITLE\tACTIVE")
				for _, u := range out.Users {
					_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n",
						u.ID(), u.FullName(), u.Email(), u.Title(), u.Active())
				}
				return w.Flush()
			}
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name or name fragment")
	cmd.Flags().StringVar(&email, "email", "", "Email or email fragment")
	cmd.Flags().StringVar(&id, "id", "", "Exact user id")

	return cmd
}

type userRow struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Title   string `json:"title,omitempty"`
	Active  bool   `json:"active"`
	Created string `json:"created,omitempty"`
}

func newUsersRefreshCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Force a full refresh of the cached user directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := deps.RefreshDirectory.Execute(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to refresh directory: %w", err)
			}
			_, _ = fmt.Fprintf(deps.Out, "Directory refreshed: %d users\n", out.Users)
			return nil
		},
	}
}
