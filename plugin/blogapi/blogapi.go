// Package blogapi sets up the blog API configuration shared with the theme's
// publishing features.
package blogapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"zhi-theme/core/module"

	"github.com/go-viper/mapstructure/v2"
)

// Libpath is the registry key of the module.
const Libpath = "zhi/blog-api.js"

// Keys read and written on the env.
const (
	ConfigKey = "blog.config"
	APIKey    = "blogApi"
)

// PageType is the kind of page a post is published as.
type PageType string

const (
	PageTypeMarkdown PageType = "Markdown"
	PageTypeHTML     PageType = "Html"
)

// Config describes one blog endpoint.
type Config struct {
	Home     string   `json:"home" mapstructure:"home"`
	APIURL   string   `json:"apiUrl" mapstructure:"apiUrl"`
	Username string   `json:"username" mapstructure:"username"`
	Password string   `json:"-" mapstructure:"password"`
	BlogName string   `json:"blogName" mapstructure:"blogName"`
	PageType PageType `json:"pageType" mapstructure:"pageType"`
}

// Validate checks the required fields.
func (c Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("blog api url is required")
	}
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("blog api url %q must be http or https", c.APIURL)
	}
	return nil
}

// API is the configured blog client handle placed on the env.
type API struct {
	Config Config
}

// PostURL returns the public address of a post.
func (a *API) PostURL(id string) string {
	return strings.TrimRight(a.Config.Home, "/") + "/post/" + id
}

// configFrom reads ConfigKey, either a Config or a table set by a Lua module.
func configFrom(env *module.Env) (Config, bool, error) {
	raw, ok := env.Get(ConfigKey)
	if !ok || raw == nil {
		return Config{}, false, nil
	}
	switch v := raw.(type) {
	case Config:
		return v, true, nil
	case *Config:
		return *v, true, nil
	case map[string]any:
		var cfg Config
		if err := mapstructure.Decode(v, &cfg); err != nil {
			return Config{}, false, fmt.Errorf("invalid %s: %w", ConfigKey, err)
		}
		return cfg, true, nil
	default:
		return Config{}, false, fmt.Errorf("invalid %s: unsupported type %T", ConfigKey, raw)
	}
}

// New returns the module. Its init hook reads ConfigKey from the env.
func New() (module.Module, error) {
	return module.WithInit(Libpath, initialize, nil), nil
}

func initialize(_ context.Context, env *module.Env) (any, error) {
	cfg, ok, err := configFrom(env)
	if err != nil || !ok {
		return nil, err
	}
	if cfg.PageType == "" {
		cfg.PageType = PageTypeMarkdown
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	env.Set(APIKey, &API{Config: cfg})
	return map[string]any{"blogName": cfg.BlogName, "apiUrl": cfg.APIURL}, nil
}
