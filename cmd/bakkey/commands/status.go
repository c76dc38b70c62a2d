package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"bakkey/internal/crypto"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that bakkeyd is reachable and print its panel recipient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()
			if err := appCtx.Daemon.Health(ctx); err != nil {
				return fmt.Errorf("bakkeyd at %s: %w", cfg.ServerURL, err)
			}
			panel, err := appCtx.Daemon.PanelRecipient(ctx)
			if err != nil {
				return err
			}
			fp, err := crypto.RecipientFingerprint(panel)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "bakkeyd:         %s (ok)\n", cfg.ServerURL)
			fmt.Fprintf(out, "Panel recipient: %s\n", panel)
			fmt.Fprintf(out, "Fingerprint:     %s\n", fp)
			return nil
		},
	}
}
