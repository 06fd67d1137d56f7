package root

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newStudyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "study <xp> <label...>",
		Short: "Record a study action worth some XP",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("xp and label are required")
			}
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 {
				return errors.New("xp must be a non-negative integer")
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

			amount, _ := strconv.Atoi(args[0])
			res, err := s.svc.RecordAction(ctx, amount, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	return cmd
}
