package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"bakkey/internal/crypto"
	"bakkey/internal/domain"
	"bakkey/internal/services/backupkey"
)

func recoverCmd() *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "recover [words...]",
		Short: "Print the age recipient for a recovery phrase",
		Long:  "Print the age recipient for a recovery phrase. Without arguments the phrase is read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := phraseArgs(cmd, args)
			if err != nil {
				return err
			}
			var recipient domain.AgeRecipient
			if remote {
				ctx, cancel := requestContext(cmd)
				defer cancel()
				recipient, err = appCtx.Daemon.Recover(ctx, words.String())
			} else {
				recipient, err = appCtx.Backups.WordsToAgeRecipient(cmd.Context(), words)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), recipient)
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "ask bakkeyd instead of deriving locally")
	return cmd
}

func verifyCmd() *cobra.Command {
	var recipient string
	cmd := &cobra.Command{
		Use:   "verify --recipient <age1...> [words...]",
		Short: "Check that a recovery phrase reproduces a recipient",
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := phraseArgs(cmd, args)
			if err != nil {
				return err
			}
			err = appCtx.Backups.Verify(cmd.Context(), words, domain.AgeRecipient(recipient))
			if errors.Is(err, backupkey.ErrRecipientMismatch) {
				return fmt.Errorf("phrase does not match %s", recipient)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
	cmd.Flags().StringVarP(&recipient, "recipient", "r", "", "expected age recipient")
	_ = cmd.MarkFlagRequired("recipient")
	return cmd
}

func identityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "identity [words...]",
		Short: "Print the age secret key for a recovery phrase",
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := phraseArgs(cmd, args)
			if err != nil {
				return err
			}
			id, err := appCtx.Backups.Identity(words)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func validateCmd() *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "validate <age1...>",
		Short: "Check that a string looks like an age recipient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			valid := backupkey.ValidateAgeRecipient(args[0])
			if remote {
				ctx, cancel := requestContext(cmd)
				defer cancel()
				var err error
				if valid, err = appCtx.Daemon.Validate(ctx, args[0]); err != nil {
					return err
				}
			}
			if !valid {
				return fmt.Errorf("invalid age recipient: %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "ask bakkeyd instead of checking locally")
	return cmd
}

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint <age1...>",
		Short: "Print a recipient's fingerprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fp, err := crypto.RecipientFingerprint(domain.AgeRecipient(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fingerprint: %s\n", fp)
			return nil
		},
	}
}
