package main

import (
	"os"

	"github.com/aretw0/ribs/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve <scenario.yaml>",
	Short: "Serve a router over HTTP",
	Long: `Hosts a router built from the routes of a scenario file on a frame loop and exposes
it as a JSON API: GET /state, POST /navigate, POST /sleep, POST /wake, GET /events and
GET /metrics.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		port, _ := cmd.Flags().GetString("port")
		capsule, _ := cmd.Flags().GetString("capsule")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		return cli.Serve(ctx, cli.ServeOptions{
			Path:    args[0],
			Addr:    ":" + port,
			Capsule: capsule,
			Store:   storeOptions(cmd),
		}, os.Stdout, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("capsule", "", "Capsule key restored on start and saved on shutdown")
}
