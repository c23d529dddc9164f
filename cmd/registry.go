package cmd

import (
	"github.com/arya-analytics/pluginkit/pkg/logger"
	"github.com/arya-analytics/pluginkit/pkg/storage"
	"github.com/cockroachdb/pebble"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// openRegistry builds the logger registry described by the loaded
// configuration. The returned closer releases any storage opened for persisted
// loggers.
func openRegistry() (*logger.Registry, logger.Settings, func() error, error) {
	closer := func() error { return nil }
	settings, err := logger.LoadSettings(viper.GetViper())
	if err != nil {
		return nil, settings, closer, err
	}
	debug := settings.Debug || viper.GetBool("debug")
	diag, err := configureLogging(debug)
	if err != nil {
		return nil, settings, closer, err
	}
	reg := logger.NewRegistry(logger.RegistryConfig{Diagnostics: diag, Debug: debug})

	var db *pebble.DB
	if settings.Persists() {
		store, err := storage.Open(newStorageConfig(diag))
		if err != nil {
			return nil, settings, closer, err
		}
		db = store.KV
		closer = store.Close
	}
	settings.Register(reg, db)
	return reg, settings, closer, nil
}

func newStorageConfig(logger *zap.Logger) storage.Config {
	return storage.Config{
		MemBacked: viper.GetBool("mem"),
		Dirname:   viper.GetString("data"),
		Logger:    logger.Named("storage"),
	}
}

func configureLogging(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
