package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bakkey/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var cfgFile string
	v := viper.New()
	cmd := &cobra.Command{
		Use:          "bakkeyd",
		Short:        "Backup-key daemon for the treasury panel",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ReadConfig(v, cfgFile); err != nil {
				return fmt.Errorf("read config: %w", err)
			}
			cfg, err := app.ConfigFrom(v)
			if err != nil {
				return err
			}
			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			return a.Run(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.bakkey.yaml)")
	flags.String("home", "", "state dir (default ~/.bakkey)")
	flags.StringP("passphrase", "p", "", "passphrase sealing the panel identity (or BAKKEY_PASSPHRASE)")
	flags.String("listen", "", "listen address (default 127.0.0.1:8780)")
	flags.Bool("strict-random", true, "refuse to generate keys without a secure random source")
	flags.Bool("checksum", false, "reject phrases whose BIP39 checksum is wrong")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (text, json)")
	flags.Float64("rate-limit", 0, "per-IP requests per second on key-revealing routes; 0 disables")
	flags.Int("rate-burst", 0, "per-IP burst size")

	for key, name := range map[string]string{
		app.KeyHome:           "home",
		app.KeyPassphrase:     "passphrase",
		app.KeyServerListen:   "listen",
		app.KeyRandomStrict:   "strict-random",
		app.KeyMnemonicCheck:  "checksum",
		app.KeyLogLevel:       "log-level",
		app.KeyLogFormat:      "log-format",
		app.KeyRateLimitRPS:   "rate-limit",
		app.KeyRateLimitBurst: "rate-burst",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind %s flag: %v", name, err))
		}
	}
	return cmd
}
