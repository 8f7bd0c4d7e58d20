package kernel

// Config holds configuration for the kernel API client.
type Config struct {
	// BaseURL is the address of the SiYuan kernel.
	BaseURL string `mapstructure:"base_url" default:"http://127.0.0.1:6806"`
	// Token is the API token from SiYuan settings.
	Token string `mapstructure:"token" default:""`
	// Version overrides the kernel version; empty asks the kernel.
	Version string `mapstructure:"version" default:""`
	// TimeoutSeconds bounds each API call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// NotifyTimeoutMs is how long notifications stay visible.
	NotifyTimeoutMs int `mapstructure:"notify_timeout_ms" default:"7000"`
}
