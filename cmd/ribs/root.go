package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/ribs/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ribs",
	Short: "ribs drives tree-structured UIs from a navigation back stack",
	Long: `ribs plays navigation scenarios against the routing state machine, serves a
router over HTTP and manages the capsules that persist it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.String("store", cli.StoreFile, "Capsule store (memory, file, redis)")
	flags.String("dir", ".ribs/capsules", "Directory of the file store")
	flags.String("redis-url", os.Getenv("RIBS_REDIS_URL"), "Redis URL for the redis store")
	flags.Duration("ttl", 0, "Expiry of capsules in the redis store (0 keeps them)")
	flags.String("encryption-key", os.Getenv("RIBS_ENCRYPTION_KEY"), "Base64 AES-256 key sealing capsules at rest")
	flags.StringSlice("fallback-key", nil, "Previous base64 keys still accepted for reading")
	flags.StringSlice("pii", nil, "Regular expressions of configuration params masked before saving")
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	return cli.NewLogger(level)
}

func storeOptions(cmd *cobra.Command) cli.StoreOptions {
	flags := cmd.Flags()
	opts := cli.StoreOptions{}
	opts.Backend, _ = flags.GetString("store")
	opts.Dir, _ = flags.GetString("dir")
	opts.RedisURL, _ = flags.GetString("redis-url")
	opts.TTL, _ = flags.GetDuration("ttl")
	opts.EncryptionKey, _ = flags.GetString("encryption-key")
	opts.FallbackKeys, _ = flags.GetStringSlice("fallback-key")
	opts.PIIFields, _ = flags.GetStringSlice("pii")
	return opts
}
