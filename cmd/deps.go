package cmd

import (
	"fmt"
	"strings"

	"zhi-theme/core/dependency"
	"zhi-theme/core/loader"

	"github.com/spf13/cobra"
)

// depsCmd represents the deps command
var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "List the discovered dependencies",
	Long:  `Reads the dependency manifest and shows, without loading anything, which items a bootstrap pass would resolve and which it would skip.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx, false)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		runAs := a.cfg.Theme.RunAs
		if flag, _ := cmd.Flags().GetString("run-as"); flag != "" {
			runAs = flag
		}

		src, err := a.source()
		if err != nil {
			return err
		}
		items, err := src.Discover(ctx)
		if err != nil {
			return err
		}

		plan := loader.Plan(items, dependency.Runtime(runAs))
		fmt.Printf("%-40s %-7s %-8s %-11s %-18s %s\n", "LIBPATH", "FORMAT", "TYPE", "BASE", "PLAN", "RUN AS")
		for i, item := range items {
			runtimes := make([]string, len(item.RunAs))
			for j, rt := range item.RunAs {
				runtimes[j] = string(rt)
			}
			fmt.Printf("%-40s %-7s %-8s %-11s %-18s %s\n",
				item.Libpath(), item.Format, item.ImportType, item.BaseType, plan[i], strings.Join(runtimes, ","))
		}
		fmt.Printf("\n%d dependencies for runtime %s\n", len(items), runAs)
		return nil
	},
}

func init() {
	depsCmd.Flags().String("run-as", "", "Runtime tag to plan for")
	RootCmd.AddCommand(depsCmd)
}
