package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"zhi-theme/core/dependency"
	"zhi-theme/core/script"
	"zhi-theme/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish [file]",
	Short: "Upload a Lua module for the Remote base path",
	Long: `Compiles a Lua module locally and uploads it to the storage bucket under the remote prefix,
so manifests can reference it with baseType Remote. Use --list to show published modules.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		list, _ := cmd.Flags().GetBool("list")
		as, _ := cmd.Flags().GetString("as")

		a, err := newApp(ctx, false)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		if a.store == nil {
			return errors.New("storage is not available (set STORAGE_ENABLED=true)")
		}
		bucket := a.cfg.Storage.Bucket

		if list {
			keys, err := storage.ListKeys(ctx, a.store, bucket, a.cfg.Storage.Prefix)
			if err != nil {
				return err
			}
			for _, key := range keys {
				fmt.Println(key)
			}
			return nil
		}

		if len(args) == 0 {
			return errors.New("a module file is required")
		}
		file := args[0]
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read module: %w", err)
		}

		libpath := as
		if libpath == "" {
			libpath = filepath.ToSlash(filepath.Base(file))
		}
		if _, err := script.Compile(libpath, data); err != nil {
			return fmt.Errorf("module does not compile: %w", err)
		}

		key, err := a.resolver.Paths().Resolve(libpath, dependency.BasePathRemote)
		if err != nil {
			return err
		}
		if err := storage.WriteObject(ctx, a.store, bucket, key, data, "text/x-lua"); err != nil {
			return err
		}

		a.logger.Info("Module published", zap.String("libpath", libpath), zap.String("bucket", bucket), zap.String("key", key))
		return nil
	},
}

func init() {
	publishCmd.Flags().String("as", "", "Libpath to publish under (defaults to the file name)")
	publishCmd.Flags().Bool("list", false, "List published modules")
	RootCmd.AddCommand(publishCmd)
}
