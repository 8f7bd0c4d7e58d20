package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"zhi-theme/core/bootstrap"

	"github.com/spf13/cobra"
)

var (
	runAsFlag    string
	manifestFlag string
)

// bootstrapCmd represents the bootstrap command
var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Run one theme bootstrap pass",
	Long:  `Checks the runtime and kernel version, discovers the dependency manifest and loads every dependency in order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		jsonOutput, _ := cmd.Flags().GetBool("json")

		a, err := newApp(ctx, true)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		if runAsFlag != "" {
			a.cfg.Theme.RunAs = runAsFlag
		}
		if manifestFlag != "" {
			a.cfg.Theme.Manifest = manifestFlag
		}

		b, err := a.bootstrapper()
		if err != nil {
			return err
		}
		res, err := b.Run(ctx)
		if err != nil {
			return fmt.Errorf("bootstrap failed: %w", err)
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		printResult(res)
		return nil
	},
}

func printResult(res *bootstrap.Result) {
	fmt.Printf("Runtime: %s\n", res.Runtime)
	if res.KernelVersion != "" {
		fmt.Printf("Kernel:  %s\n", res.KernelVersion)
	}
	fmt.Printf("Status:  %s\n", res.Status)
	if res.Message != "" {
		fmt.Printf("         %s\n", res.Message)
	}
	if res.Report == nil {
		return
	}

	loaded, skipped, failed := res.Report.Summary()
	fmt.Printf("\n%-40s %-8s %-22s %s\n", "LIBPATH", "TYPE", "STATUS", "DETAIL")
	for _, o := range res.Report.Outcomes {
		detail := o.Hook
		if o.Error != "" {
			detail = o.Error
		}
		fmt.Printf("%-40s %-8s %-22s %s\n", o.Libpath, o.ImportType, o.Status, detail)
	}
	fmt.Printf("\nLoaded: %d  Skipped: %d  Failed: %d\n", loaded, skipped, failed)
	if res.RunID != "" {
		fmt.Printf("Recorded as run %s\n", res.RunID)
	}
}

func init() {
	bootstrapCmd.Flags().StringVar(&runAsFlag, "run-as", "", "Override the runtime tag (e.g. Siyuan_Browser)")
	bootstrapCmd.Flags().StringVar(&manifestFlag, "manifest", "", "Override the manifest path or object")
	bootstrapCmd.Flags().Bool("json", false, "Output the result as JSON")
	RootCmd.AddCommand(bootstrapCmd)
}
