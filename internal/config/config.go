package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Bitlatte/quill/internal/model"
)

// Config holds the site-level configuration read from config.yaml.
type Config struct {
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	Author      string `mapstructure:"author"`
	BaseURL     string `mapstructure:"baseURL"`
	OutputDir   string `mapstructure:"outputDir"`

	// Sanitize runs rendered HTML through a UGC sanitization policy.
	Sanitize bool `mapstructure:"sanitize"`

	// Workers bounds how many pages render concurrently. Rendering is a
	// pure function per page, so this only affects throughput.
	Workers int `mapstructure:"workers"`

	Menus map[string][]model.MenuItem `mapstructure:"menus"`
}

// Load reads the site configuration from root. cfgFile overrides the
// conventional config.yaml lookup when non-empty. Environment variables
// prefixed with QUILL_ override file values.
func Load(root, cfgFile string) (Config, error) {
	v := viper.New()

	v.SetDefault("title", "My Quill Site")
	v.SetDefault("outputDir", "public")
	v.SetDefault("baseURL", "")
	v.SetDefault("workers", 4)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(root)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("QUILL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// Not finding a config file on the search path is fine; defaults
		// and env vars apply. An explicit --config that fails still errors.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	for _, items := range cfg.Menus {
		model.SortMenu(items)
	}
	return cfg, nil
}
