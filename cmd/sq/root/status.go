package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"studyquest/internal/engine"
	"studyquest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, streak, challenge and bonuses",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			printDay(out, s.day)

			st := s.svc.State()
			into, span := engine.LevelProgress(st.XP)

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Study Status"))
			fmt.Fprintln(out, ui.LabelValue("Level", st.Level()))
			fmt.Fprintln(out, ui.LabelValue("Total XP", fmt.Sprintf("%d %s %d/%d (%d to go)", st.XP, ui.ProgressBar(into, span, 20), into, span, engine.XPToNextLevel(st.XP))))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%d day(s) %s", st.Streak, ui.IconFire)))
			fmt.Fprintln(out, ui.LabelValue("Side quests", st.SideQuestCount))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconTarget+" Daily challenge"))
			fmt.Fprintf(out, "- %s %s\n", st.DailyChallenge, ui.Check(st.DailyChallengeCompleted))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconGift+" Bonuses"))
			amount, claimable := engine.StreakBonus(st)
			switch {
			case claimable:
				fmt.Fprintf(out, "- %s %s\n", ui.Key.Render("Streak bonus:"), ui.Good.Render(fmt.Sprintf("+%d XP ready", amount))+" "+ui.Muted.Render("(sq bonus)"))
			case amount > 0:
				fmt.Fprintf(out, "- %s %s\n", ui.Key.Render("Streak bonus:"), ui.Muted.Render("claimed"))
			default:
				fmt.Fprintf(out, "- %s %s\n", ui.Key.Render("Streak bonus:"), ui.Muted.Render(fmt.Sprintf("%s unlocks at %d days", ui.IconLock, engine.StreakBonusThreshold)))
			}
			if st.ActiveTask != nil {
				elapsed := time.Since(st.ActiveTask.StartedAt).Round(time.Second)
				fmt.Fprintf(out, "- %s running for %s %s\n", ui.Key.Render("Timer:"), elapsed, ui.Muted.Render(fmt.Sprintf("(bonus if under %s)", engine.TimedTaskLimit)))
			} else {
				fmt.Fprintf(out, "- %s %s\n", ui.Key.Render("Timer:"), ui.Muted.Render("idle"))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.LabelValue("Badges", fmt.Sprintf("%d/%d", engine.CountEarned(st), len(engine.AllBadges))))
			return nil
		},
	}

	return cmd
}
