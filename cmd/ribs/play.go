package main

import (
	"os"

	"github.com/aretw0/ribs/internal/cli"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play <scenario.yaml>",
	Short: "Play a navigation scenario",
	Long: `Plays the steps of a scenario file against a router and prints the back stack and
the attached views after each one. With --capsule the router is restored before the
first step and saved after the last.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		capsule, _ := cmd.Flags().GetString("capsule")
		jsonMode, _ := cmd.Flags().GetBool("json")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		return cli.Play(ctx, cli.PlayOptions{
			Path:    args[0],
			Capsule: capsule,
			JSON:    jsonMode,
			Store:   storeOptions(cmd),
		}, os.Stdout, logger)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().String("capsule", "", "Capsule key to restore from and save to")
	playCmd.Flags().Bool("json", false, "Print the report as JSON")
}
