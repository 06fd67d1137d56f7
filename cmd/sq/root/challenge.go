package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"studyquest/internal/engine"
	"studyquest/internal/ui"
)

func newChallengeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenge [done]",
		Short: "Show today's challenge, or mark it done",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 || (len(args) == 1 && args[0] != "done") {
				return errors.New(`usage: sq challenge [done]`)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			printDay(cmd.OutOrStdout(), s.day)

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				st := s.svc.State()
				fmt.Fprintln(out, ui.Heading(ui.IconTarget, "Daily challenge"))
				fmt.Fprintf(out, "%s %s %s\n", st.DailyChallenge, ui.Check(st.DailyChallengeCompleted), ui.Muted.Render(fmt.Sprintf("(+%d XP)", engine.DailyChallengeXP)))
				return nil
			}

			res, err := s.svc.CompleteDailyChallenge(ctx)
			if errors.Is(err, engine.ErrChallengeAlreadyDone) {
				printResult(out, res)
				return nil
			}
			if err != nil {
				return err
			}
			printResult(out, res)
			return nil
		},
	}

	return cmd
}
