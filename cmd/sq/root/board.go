package root

import (
	"context"

	"github.com/spf13/cobra"

	"studyquest/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			printDay(cmd.OutOrStdout(), s.day)

			return tui.RunBoard(ctx, s.svc, cmd.OutOrStdout())
		},
	}

	return cmd
}
