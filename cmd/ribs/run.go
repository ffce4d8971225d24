package main

import (
	"os"

	"github.com/aretw0/ribs/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Drive a router interactively",
	Long: `Reads navigation commands from stdin, one per line, and prints the back stack and
the attached views after each one:

  push Details id=42
  push_overlay Share
  back
  sleep
  wake
  frames 10
  quit

With --json each line is a step object and each answer a JSON line.`,
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

		return cli.RunSession(ctx, cli.SessionOptions{
			Path:    args[0],
			Capsule: capsule,
			JSON:    jsonMode,
			Store:   storeOptions(cmd),
			Prompt:  term.IsTerminal(int(os.Stdin.Fd())),
		}, os.Stdin, os.Stdout, logger)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("capsule", "", "Capsule key to restore from and save to")
	runCmd.Flags().Bool("json", false, "Read and write JSON lines")
}
