package bootstrap

// Config holds configuration for the theme bootstrap.
type Config struct {
	// RunAs is the runtime tag the host reports (Siyuan_MainWin, Siyuan_Browser, ...).
	RunAs string `mapstructure:"run_as" default:"Siyuan_MainWin"`
	// Workspace is the SiYuan workspace directory base paths resolve against.
	Workspace string `mapstructure:"workspace" default:"."`
	// Manifest is the dependency manifest file or object name.
	Manifest string `mapstructure:"manifest" default:"dependencies.json"`
	// ManifestSource selects where the manifest lives (file, storage).
	ManifestSource string `mapstructure:"manifest_source" default:"file"`
	// MinThemeVersion is the lowest kernel version the theme supports.
	MinThemeVersion string `mapstructure:"min_theme_version" default:"2.7.6"`
	// MinKernelVersion is the lowest kernel version with a working plugin system.
	MinKernelVersion string `mapstructure:"min_kernel_version" default:"2.8.1"`
}

const (
	ManifestSourceFile    = "file"
	ManifestSourceStorage = "storage"
)

// IsValidManifestSource checks if the configured manifest source is known.
func (c Config) IsValidManifestSource() bool {
	switch c.ManifestSource {
	case ManifestSourceFile, ManifestSourceStorage:
		return true
	default:
		return false
	}
}
