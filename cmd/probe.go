package cmd

import (
	"fmt"
	"strings"

	"github.com/arya-analytics/pluginkit/pkg/logger"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var probeCmd = &cobra.Command{
	Use:   "probe <logger> <message...>",
	Short: "Write a message through a named logger",
	Long: `probe resolves the named logger exactly as a plugin would and writes the
message to it. Writing to a logger that resolved to the no-op logger succeeds
and discards the message.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		lvl, err := logger.ParseLevel(probeLevel)
		if err != nil {
			return err
		}
		reg, _, closeStorage, err := openRegistry()
		if err != nil {
			return err
		}
		defer func() { err = errors.CombineErrors(err, closeStorage()) }()

		name := args[0]
		l := reg.Get(name)
		logger.Log(l, lvl, strings.Join(args[1:], " "), "probe", true)
		if s, ok := l.(*zap.SugaredLogger); ok {
			// Syncing stderr fails on some platforms; the entry is already written.
			_ = s.Sync()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", name, lvl, resolution(l))
		return nil
	},
}

var probeLevel string

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().StringVarP(&probeLevel, "level", "l", "info", "Level to write the message at.")
}
