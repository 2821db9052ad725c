package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/goaltrack/internal/state"
)

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print today's tasks, goals and level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.build(opts.commandLogger())
			if err != nil {
				return err
			}
			defer a.Close()
			printStatus(cmd.OutOrStdout(), a.Store.Snapshot())
			return nil
		},
	}
}

func printStatus(w io.Writer, snap state.Snapshot) {
	fmt.Fprintf(w, "Level %d  %d/%d XP  (%d%%)\n", snap.UserStats.Level, snap.UserStats.XP, snap.UserStats.Threshold(), snap.LevelProgress)
	fmt.Fprintf(w, "Today: %d%% done, %d day streak\n\n", snap.DailyProgress, snap.Momentum)

	fmt.Fprintln(w, "Tasks:")
	if len(snap.Tasks) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for i, t := range snap.Tasks {
		check := " "
		if t.Completed {
			check = "x"
		}
		fmt.Fprintf(w, "  %d. [%s] %s\n", i+1, check, t.Text)
	}

	fmt.Fprintln(w, "\nGoals:")
	if len(snap.Goals) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for i, g := range snap.Goals {
		fmt.Fprintf(w, "  %d. %s (%s) %d%%\n", i+1, g.Title, g.Type, g.Progress)
	}

	unlocked := 0
	for _, ach := range snap.Achievements {
		if ach.Unlocked {
			unlocked++
		}
	}
	fmt.Fprintf(w, "\nAchievements: %d/%d  Unread notifications: %d\n", unlocked, len(snap.Achievements), snap.UnreadCount)
}
