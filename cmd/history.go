package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent bootstrap runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(ctx, true)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		if a.history == nil {
			return errors.New("bootstrap history is disabled (set DATABASE_ENABLED=true)")
		}

		runs, err := a.history.Recent(ctx, limit)
		if err != nil {
			return err
		}

		for _, run := range runs {
			fmt.Printf("%s  %s  %-15s loaded=%d skipped=%d failed=%d\n",
				run.ID, run.StartedAt.Format("2006-01-02 15:04:05"), run.RunAs, run.Loaded, run.Skipped, run.Failed)
			for _, o := range run.Outcomes {
				if !o.Failed() {
					continue
				}
				fmt.Printf("    %s %s: %s\n", o.Status, o.Libpath, o.Error)
			}
		}
		if len(runs) == 0 {
			fmt.Println("No bootstrap runs recorded")
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 10, "Number of runs to show")
	RootCmd.AddCommand(historyCmd)
}
