package root

import (
	"context"

	"github.com/spf13/cobra"
)

func newBonusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bonus",
		Short: "Claim the streak bonus",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			printDay(cmd.OutOrStdout(), s.day)

			res, err := s.svc.ClaimStreakBonus(ctx)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	return cmd
}
