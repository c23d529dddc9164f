package cmd

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "pluginkit",
	Short: "Inspect and exercise the loggers a plugin is configured with",
	Long: `pluginkit reads the logging section of a configuration file, builds the
named logger registry it describes and reports how each logger resolves. Loggers
that cannot be built resolve to a no-op logger instead of failing.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return readConfig()
	},
}

// Execute runs the root command with the process arguments.
func Execute() error { return rootCmd.Execute() }

func init() {
	rootCmd.PersistentFlags().StringP(
		"config",
		"c",
		"",
		"Path to a configuration file containing a logging section.",
	)

	rootCmd.PersistentFlags().Bool(
		"debug",
		false,
		"Report why a logger resolved to the no-op logger.",
	)

	rootCmd.PersistentFlags().StringP(
		"data",
		"d",
		"pluginkit-data",
		"Dirname where persisted loggers store their entries.",
	)

	rootCmd.PersistentFlags().Bool(
		"mem",
		false,
		"Keep persisted entries in memory instead of on disk.",
	)

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
}

func readConfig() error {
	path := viper.GetString("config")
	if path == "" {
		return nil
	}
	viper.SetConfigFile(path)
	return errors.Wrapf(viper.ReadInConfig(), "[cmd] - failed to read %s", path)
}
