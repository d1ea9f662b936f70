package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the modelgen version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("modelgen version %s (%s/%s %s)\n", version, runtime.GOOS, runtime.GOARCH, runtime.Version())
	},
}
