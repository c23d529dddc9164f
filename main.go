package main

import (
	"os"

	"github.com/arya-analytics/pluginkit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
