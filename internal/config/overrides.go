package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. RENTALDESK_API_BASE_URL
const EnvPrefix = "RENTALDESK"

// flagKeys maps command line flags onto config keys
var flagKeys = map[string]string{
	"api":       "api.base_url",
	"timeout":   "api.timeout",
	"page-size": "ui.page_size",
	"debounce":  "ui.search_debounce",
	"tab":       "ui.start_tab",
	"log-file":  "log.file",
	"log-level": "log.level",
}

// RegisterFlags adds the override flags to fs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("api", "", "Base URL of the rental API")
	fs.Duration("timeout", 0, "Per-request timeout")
	fs.Int("page-size", 0, "Rows per page")
	fs.Duration("debounce", 0, "Delay before a search keystroke triggers a fetch")
	fs.String("tab", "", "Tab to open on start (home, customers, films)")
	fs.String("log-file", "", "Diagnostic log file")
	fs.String("log-level", "", "Log level (debug, info, warn, error)")
}

// NewOverrides binds the flags and RENTALDESK_* environment variables into one viper instance
func NewOverrides(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return v, nil
}

// ApplyOverrides copies every explicitly set flag or environment value over cfg.
// Precedence is flag > environment > file > defaults.
func (c *Config) ApplyOverrides(v *viper.Viper) error {
	if v == nil {
		return nil
	}
	if v.IsSet("api.base_url") {
		c.API.BaseURL = v.GetString("api.base_url")
	}
	if v.IsSet("api.timeout") {
		c.API.Timeout = Duration{v.GetDuration("api.timeout")}
	}
	if v.IsSet("ui.page_size") {
		c.UI.PageSize = v.GetInt("ui.page_size")
	}
	if v.IsSet("ui.search_debounce") {
		c.UI.SearchDebounce = Duration{v.GetDuration("ui.search_debounce")}
	}
	if v.IsSet("ui.start_tab") {
		c.UI.StartTab = strings.ToLower(v.GetString("ui.start_tab"))
	}
	if v.IsSet("log.file") {
		c.Log.File = v.GetString("log.file")
	}
	if v.IsSet("log.level") {
		c.Log.Level = v.GetString("log.level")
	}
	return c.Validate()
}
