package main

import (
	"os"

	"github.com/aretw0/ribs/internal/cli"
	"github.com/spf13/cobra"
)

var capsuleCmd = &cobra.Command{
	Use:   "capsule",
	Short: "Manage persisted router capsules",
	Long:  `List, inspect, and remove the capsules saved in the configured store.`,
}

var capsuleLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all capsules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		return cli.ListCapsules(cmd.Context(), storeOptions(cmd), os.Stdout, logger)
	},
}

var capsuleInspectCmd = &cobra.Command{
	Use:   "inspect <key>",
	Short: "Print a capsule as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		return cli.InspectCapsule(cmd.Context(), storeOptions(cmd), args[0], os.Stdout, logger)
	},
}

var capsuleRmCmd = &cobra.Command{
	Use:   "rm <key>...",
	Short: "Remove one or more capsules",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		return cli.RemoveCapsules(cmd.Context(), storeOptions(cmd), args, os.Stdout, logger)
	},
}

func init() {
	rootCmd.AddCommand(capsuleCmd)
	capsuleCmd.AddCommand(capsuleLsCmd)
	capsuleCmd.AddCommand(capsuleInspectCmd)
	capsuleCmd.AddCommand(capsuleRmCmd)
}
