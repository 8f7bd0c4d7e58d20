// Package bootstrap initializes the zhi theme.
//
// A pass runs in fixed order:
//
//  1. Runtime gate: only Siyuan_MainWin and Siyuan_Browser boot.
//  2. Kernel version gate against MinThemeVersion and MinKernelVersion, with a
//     kernel notification when the kernel is too old.
//  3. Mount zhiLog, zhiRequire and zhiImportPath on the shared env.
//  4. Discover the dependency list and hand it to the loader.
//  5. Record the report in history when one is configured.
//
// # Usage
//
//	b := bootstrap.New(cfg.Theme, source, res, kernelClient, logger,
//	    bootstrap.WithHistory(history))
//	result, err := b.Run(ctx)
package bootstrap
