package root

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

func newQuestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest <description...>",
		Short: "Complete a side quest",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			printDay(cmd.OutOrStdout(), s.day)

			res, err := s.svc.CompleteSideQuest(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	return cmd
}
