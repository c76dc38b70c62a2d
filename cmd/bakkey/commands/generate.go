package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"bakkey/internal/crypto"
	"bakkey/internal/domain"
)

func generateCmd() *cobra.Command {
	var confirm, track bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new backup key (12-word phrase and age recipient)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				key domain.BackupKey
				id  domain.KeyID
			)
			if track {
				ctx, cancel := requestContext(cmd)
				defer cancel()
				res, err := appCtx.Daemon.Generate(ctx, true)
				if err != nil {
					return err
				}
				key = domain.BackupKey{Mnemonic: res.Mnemonic, AgeRecipient: res.AgeRecipient}
				id = res.KeyID
			} else {
				var err error
				if key, err = appCtx.Backups.Generate(cmd.Context()); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Recovery phrase: %s\n", key.Mnemonic)
			fmt.Fprintf(out, "Age recipient:   %s\n", key.AgeRecipient)
			if id != "" {
				fmt.Fprintf(out, "Key ID:          %s (unsaved)\n", id)
			}
			if !confirm {
				return nil
			}

			fmt.Fprint(out, "\nWrite the phrase down, then re-enter it: ")
			words, err := readPhrase(cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := appCtx.Backups.Verify(cmd.Context(), words, key.AgeRecipient); err != nil {
				return err
			}
			if id != "" {
				ctx, cancel := requestContext(cmd)
				defer cancel()
				if _, err := appCtx.Daemon.ConfirmKey(ctx, id, words.String()); err != nil {
					return err
				}
			}
			fmt.Fprintln(out, "Phrase confirmed.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&confirm, "confirm", false, "ask for the phrase again and check it reproduces the recipient")
	cmd.Flags().BoolVar(&track, "track", false, "generate through bakkeyd and keep the key as unsaved until confirmed")
	return cmd
}

// readPhrase reads one line of words from r.
func readPhrase(r io.Reader) (domain.Mnemonic, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if strings.TrimSpace(line) == "" {
		return nil, errors.New("no phrase entered")
	}
	return crypto.ParseMnemonic(line), nil
}

// phraseArgs joins positional words, or reads a line from stdin when there are none.
func phraseArgs(cmd *cobra.Command, args []string) (domain.Mnemonic, error) {
	if len(args) == 0 {
		return readPhrase(cmd.InOrStdin())
	}
	return crypto.ParseMnemonic(strings.Join(args, " ")), nil
}
