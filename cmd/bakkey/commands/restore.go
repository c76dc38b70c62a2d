package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"bakkey/internal/crypto"
	"bakkey/internal/domain"
	"bakkey/internal/util/memzero"
)

func restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore [words...]",
		Short: "Send a recovery phrase to bakkeyd, encrypted to its panel recipient",
		Long: "Encrypt a recovery phrase to the panel recipient published by bakkeyd " +
			"and ask it which registered backup key the phrase belongs to. " +
			"Without arguments the phrase is read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := phraseArgs(cmd, args)
			if err != nil {
				return err
			}

			ctx, cancel := requestContext(cmd)
			defer cancel()
			panel, err := appCtx.Daemon.PanelRecipient(ctx)
			if err != nil {
				return err
			}

			plaintext := []byte(words.String())
			defer memzero.Zero(plaintext)
			ct, err := crypto.Encrypt([]domain.AgeRecipient{panel}, plaintext, false)
			if err != nil {
				return err
			}

			res, err := appCtx.Daemon.Restore(ctx, crypto.B64(ct))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Age recipient: %s\n", res.AgeRecipient)
			if res.Registered {
				fmt.Fprintf(out, "Registered as: %s\n", res.KeyID)
			} else {
				fmt.Fprintln(out, "Not registered with bakkeyd.")
			}
			return nil
		},
	}
}
