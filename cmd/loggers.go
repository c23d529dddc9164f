package cmd

import (
	"fmt"
	"sort"

	"github.com/arya-analytics/pluginkit/pkg/logger"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var loggersCmd = &cobra.Command{
	Use:   "loggers",
	Short: "List configured loggers and how they resolve",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		reg, settings, closeStorage, err := openRegistry()
		if err != nil {
			return err
		}
		defer func() { err = errors.CombineErrors(err, closeStorage()) }()

		names := make([]string, 0, len(settings.Loggers))
		for name := range settings.Loggers {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, resolution(reg.Get(name)))
		}
		return nil
	},
}

func resolution(l logger.Logger) string {
	if logger.IsNop(l) {
		return "fallback"
	}
	return "ok"
}

func init() {
	rootCmd.AddCommand(loggersCmd)
}
