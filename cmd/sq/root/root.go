package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"studyquest/internal/ui"
)

const Version = "0.1.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:           "sq",
	Short:         "StudyQuest: gamified self-study tracker",
	Long:          "StudyQuest awards XP for study actions and tracks levels, streaks, daily challenges, moods, timed tasks and badges.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/studyquest/config.toml)")

	rootCmd.AddCommand(
		newStatusCmd(),
		newStudyCmd(),
		newChallengeCmd(),
		newBonusCmd(),
		newMoodCmd(),
		newQuestCmd(),
		newTimerCmd(),
		newBadgesCmd(),
		newHistoryCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+ui.ErrorText(err)))
		os.Exit(1)
	}
}
