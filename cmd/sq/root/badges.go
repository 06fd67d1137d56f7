package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"studyquest/internal/engine"
	"studyquest/internal/ui"
)

func newBadgesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "badges",
		Short: "List badges and which ones you hold",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			printDay(cmd.OutOrStdout(), s.day)

			st := s.svc.State()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, fmt.Sprintf("Badges %d/%d", engine.CountEarned(st), len(engine.AllBadges))))
			for _, b := range engine.BadgeCatalog(st) {
				if b.Earned {
					fmt.Fprintf(out, "- %s %s %s\n", b.Icon, ui.Gold.Render(string(b.Badge)), ui.Muted.Render(b.Description))
				} else {
					fmt.Fprintf(out, "- %s %s %s\n", ui.IconLock, ui.Muted.Render(string(b.Badge)), ui.Muted.Render(b.Description))
				}
			}
			return nil
		},
	}

	return cmd
}
