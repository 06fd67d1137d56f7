package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"studyquest/internal/engine"
	"studyquest/internal/ui"
)

func newMoodCmd() *cobra.Command {
	var preview bool

	names := make([]string, 0, len(engine.Moods))
	for _, m := range engine.Moods {
		names = append(names, string(m))
	}

	cmd := &cobra.Command{
		Use:       "mood <" + strings.Join(names, "|") + ">",
		Short:     "Log how you feel about today's study",
		ValidArgs: names,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("mood is required")
			}
			_, err := engine.ParseMood(args[0])
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			mood, _ := engine.ParseMood(args[0])
			moodXP := engine.PreviewMood(mood)
			out := cmd.OutOrStdout()
			if preview {
				fmt.Fprintf(out, "%s %s\n", ui.Key.Render(string(mood)+":"), ui.Muted.Render(fmt.Sprintf("+%d XP", moodXP)))
				return nil
			}

			ctx := context.Background()
			s, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			printDay(cmd.OutOrStdout(), s.day)

			res, err := s.svc.SubmitMood(ctx, moodXP)
			if err != nil {
				return err
			}
			printResult(out, res)
			return nil
		},
	}

	cmd.Flags().BoolVar(&preview, "preview", false, "Show the XP the mood is worth without logging it")
	return cmd
}
