package logger

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config describes how a single zap logger is built.
type Config struct {
	// Level is the minimum Level written. Defaults to info.
	Level string `mapstructure:"level"`
	// Encoding is either "json" or "console". Defaults to json.
	Encoding string `mapstructure:"encoding"`
	// Output is a list of zap sink URLs or file paths. Defaults to stderr.
	Output []string `mapstructure:"output"`
	// Development enables zap's development mode (stack traces on warnings,
	// DPanic panics).
	Development bool `mapstructure:"development"`
	// Persist writes entries to the key-value store as JSON instead of Output.
	Persist bool `mapstructure:"persist"`
}

// Override returns c with every unset field taken from base.
func (c Config) Override(base Config) Config {
	if c.Level == "" {
		c.Level = base.Level
	}
	if c.Encoding == "" {
		c.Encoding = base.Encoding
	}
	if len(c.Output) == 0 {
		c.Output = base.Output
	}
	c.Development = c.Development || base.Development
	c.Persist = c.Persist || base.Persist
	return c
}

func (c Config) zapConfig() (zap.Config, error) {
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	if c.Level != "" {
		lvl, err := ParseLevel(c.Level)
		if err != nil {
			return zc, err
		}
		zc.Level = zap.NewAtomicLevelAt(lvl.ZapLevel())
	}
	if c.Encoding != "" {
		zc.Encoding = c.Encoding
	}
	if len(c.Output) > 0 {
		zc.OutputPaths = c.Output
	}
	return zc, nil
}

// Build opens a zap logger from c.
func (c Config) Build() (*zap.Logger, error) {
	zc, err := c.zapConfig()
	if err != nil {
		return nil, err
	}
	l, err := zc.Build()
	return l, errors.Wrap(err, "[logger] - failed to build logger")
}

// Settings is the logging section of a configuration file:
//
//	logging:
//	  debug: true
//	  defaults:
//	    level: info
//	    encoding: console
//	  loggers:
//	    audit:
//	      level: notice
//	      persist: true
//	    http:
//	      output: [/var/log/http.log]
type Settings struct {
	// Debug enables registry construction diagnostics.
	Debug bool `mapstructure:"debug"`
	// Defaults is applied to every entry in Loggers.
	Defaults Config `mapstructure:"defaults"`
	// Loggers maps logger names to their configuration.
	Loggers map[string]Config `mapstructure:"loggers"`
}

// SettingsKey is the configuration key LoadSettings reads from.
const SettingsKey = "logging"

// LoadSettings reads Settings from v under SettingsKey.
func LoadSettings(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.UnmarshalKey(SettingsKey, &s); err != nil {
		return s, errors.Wrap(err, "[logger] - invalid logging settings")
	}
	return s, nil
}

// Persists reports whether any configured logger writes to the key-value store.
func (s Settings) Persists() bool {
	for _, cfg := range s.Loggers {
		if cfg.Override(s.Defaults).Persist {
			return true
		}
	}
	return false
}

// Register registers a factory on r for every configured logger. Persisted
// loggers write to db. A logger whose configuration cannot be built, or that
// persists while db is nil, resolves to Nop.
func (s Settings) Register(r *Registry, db *pebble.DB) {
	for name, cfg := range s.Loggers {
		cfg = cfg.Override(s.Defaults)
		if cfg.Persist {
			RegisterKV(r, name, db, cfg)
			continue
		}
		r.RegisterZap(name, cfg.Build)
	}
}
