package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"bakkey/internal/app"
)

const requestTimeout = 15 * time.Second

var (
	cfgFile string
	cfg     app.Config
	appCtx  *app.Wire
)

// Execute runs the bakkey CLI.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	root := &cobra.Command{
		Use:          "bakkey",
		Short:        "Treasury backup-key toolkit",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ReadConfig(v, cfgFile); err != nil {
				return fmt.Errorf("read config: %w", err)
			}
			// The CLI is quiet unless asked otherwise.
			v.SetDefault(app.KeyLogLevel, "warn")
			var err error
			if cfg, err = app.ConfigFrom(v); err != nil {
				return err
			}
			appCtx, err = app.NewWire(cfg)
			return err
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.bakkey.yaml)")
	flags.String("home", "", "state dir (default ~/.bakkey)")
	flags.String("server", "", "bakkeyd base URL (e.g. http://127.0.0.1:8780)")
	flags.Bool("strict-random", true, "refuse to generate keys without a secure random source")
	flags.Bool("checksum", false, "reject phrases whose BIP39 checksum is wrong")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (text, json)")

	bindFlagOrPanic(v, flags, app.KeyHome, "home")
	bindFlagOrPanic(v, flags, app.KeyServerURL, "server")
	bindFlagOrPanic(v, flags, app.KeyRandomStrict, "strict-random")
	bindFlagOrPanic(v, flags, app.KeyMnemonicCheck, "checksum")
	bindFlagOrPanic(v, flags, app.KeyLogLevel, "log-level")
	bindFlagOrPanic(v, flags, app.KeyLogFormat, "log-format")

	root.AddCommand(
		generateCmd(),
		recoverCmd(),
		verifyCmd(),
		identityCmd(),
		validateCmd(),
		fingerprintCmd(),
		encryptCmd(),
		decryptCmd(),
		keysCmd(),
		restoreCmd(),
		statusCmd(),
	)
	return root
}

func bindFlagOrPanic(v *viper.Viper, flags *pflag.FlagSet, configKey, flagName string) {
	if err := v.BindPFlag(configKey, flags.Lookup(flagName)); err != nil {
		panic(fmt.Sprintf("failed to bind %s flag: %v", flagName, err))
	}
}

// requestContext bounds a single call to bakkeyd.
func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), requestTimeout)
}
