package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bakkey/internal/crypto"
	"bakkey/internal/domain"
)

// encrypt -r <age1...> [-r ...] [-a] [-i in] [-o out]
func encryptCmd() *cobra.Command {
	var (
		recipients    []string
		armored       bool
		input, output string
	)
	cmd := &cobra.Command{
		Use:   "encrypt -r <age1...> [-a]",
		Short: "Encrypt stdin (or -i) to one or more backup recipients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plaintext, err := readInput(cmd, input)
			if err != nil {
				return err
			}
			rs := make([]domain.AgeRecipient, len(recipients))
			for i, r := range recipients {
				rs[i] = domain.AgeRecipient(r)
			}
			ct, err := crypto.Encrypt(rs, plaintext, armored)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, ct)
		},
	}
	cmd.Flags().StringArrayVarP(&recipients, "recipient", "r", nil, "age recipient (repeatable)")
	cmd.Flags().BoolVarP(&armored, "armor", "a", false, "ASCII-armor the output")
	cmd.Flags().StringVarP(&input, "input", "i", "", "read from file instead of stdin")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	_ = cmd.MarkFlagRequired("recipient")
	return cmd
}

// decrypt --words "<phrase>" [-i in] [-o out]
func decryptCmd() *cobra.Command {
	var phrase, input, output string
	cmd := &cobra.Command{
		Use:   "decrypt --words <phrase>",
		Short: "Decrypt stdin (or -i) with the key behind a recovery phrase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := appCtx.Backups.Identity(crypto.ParseMnemonic(phrase))
			if err != nil {
				return err
			}
			ct, err := readInput(cmd, input)
			if err != nil {
				return err
			}
			pt, err := crypto.Decrypt(id, ct)
			if err != nil {
				return fmt.Errorf("decrypt: %w", err)
			}
			return writeOutput(cmd, output, pt)
		},
	}
	cmd.Flags().StringVar(&phrase, "words", "", "recovery phrase")
	cmd.Flags().StringVarP(&input, "input", "i", "", "read from file instead of stdin")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	_ = cmd.MarkFlagRequired("words")
	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func writeOutput(cmd *cobra.Command, path string, b []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(b)
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
