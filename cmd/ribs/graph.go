package main

import (
	"github.com/aretw0/ribs/internal/cli"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <scenario.yaml>",
	Short: "Render the screens of a scenario as a Mermaid flowchart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		return cli.Play(cmd.Context(), cli.PlayOptions{
			Path:    args[0],
			Mermaid: true,
		}, cmd.OutOrStdout(), logger)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
