package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/ribs"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ribs",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ribs version %s\n", strings.TrimSpace(ribs.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
