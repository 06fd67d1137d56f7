package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"studyquest/internal/engine"
	"studyquest/internal/ui"
)

func newTimerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Timed tasks: finish within 30 minutes for a bonus",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "start",
			Short: "Start a timed task",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := context.Background()
				s, cleanup, err := openService(ctx)
				if err != nil {
					return err
				}
				defer cleanup()
				printDay(cmd.OutOrStdout(), s.day)

				h, err := s.svc.StartTimedTask(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
					ui.Good.Render(ui.IconTimer+" Timer started"),
					ui.Muted.Render(fmt.Sprintf("at %s, finish by %s", h.StartedAt.Format("15:04"), h.StartedAt.Add(engine.TimedTaskLimit).Format("15:04"))))
				return nil
			},
		},
		&cobra.Command{
			Use:   "done",
			Short: "Finish the running timed task",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := context.Background()
				s, cleanup, err := openService(ctx)
				if err != nil {
					return err
				}
				defer cleanup()
				printDay(cmd.OutOrStdout(), s.day)

				res, err := s.svc.CompleteTimedTask(ctx)
				if err != nil {
					return err
				}
				printResult(cmd.OutOrStdout(), res)
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the running timed task",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := context.Background()
				s, cleanup, err := openService(ctx)
				if err != nil {
					return err
				}
				defer cleanup()
				printDay(cmd.OutOrStdout(), s.day)

				st := s.svc.State()
				if st.ActiveTask == nil {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No timed task running."))
					return nil
				}
				elapsed := time.Since(st.ActiveTask.StartedAt)
				left := engine.TimedTaskLimit - elapsed
				line := fmt.Sprintf("%s running for %s", ui.IconTimer, elapsed.Round(time.Second))
				if left > 0 {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(line)+" "+ui.Muted.Render(fmt.Sprintf("(%s left for the bonus)", left.Round(time.Second))))
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(line)+" "+ui.Muted.Render("(bonus window passed)"))
				}
				return nil
			},
		},
	)

	return cmd
}
