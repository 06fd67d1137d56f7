package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"studyquest/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent XP actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			printDay(cmd.OutOrStdout(), s.day)

			entries, err := s.svc.History(ctx, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Nothing logged yet."))
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s %s %s\n",
					ui.Muted.Render(e.Timestamp.Local().Format("2006-01-02 15:04")),
					ui.Good.Render(fmt.Sprintf("+%d", e.Amount)),
					e.Label)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries (0 for all)")
	return cmd
}
