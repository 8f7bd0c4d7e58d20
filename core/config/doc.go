// Package config provides configuration management for the zhi theme bootstrap.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all settings, divided into subsections:
//   - Theme: runtime tag, workspace, manifest and minimum kernel versions
//   - Kernel: SiYuan kernel API address and token
//   - Server: HTTP status server settings (port, API key)
//   - Database: run history connection
//   - Storage: S3/MinIO bucket for remote modules
//   - Log: Logging level and format
//
// Environment keys join the section and field with an underscore, e.g.
// THEME_RUN_AS, KERNEL_BASE_URL or STORAGE_BUCKET.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Theme.RunAs)
package config
