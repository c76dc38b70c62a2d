package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"bakkey/internal/domain"
)

func keysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage the backup keys registered with bakkeyd",
	}
	cmd.AddCommand(keysListCmd(), keysAddCmd(), keysRemoveCmd(), keysConfirmCmd(), keysExportCmd())
	return cmd
}

func keysListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered backup keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()
			keys, err := appCtx.Daemon.ListKeys(ctx)
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No backup keys registered.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTATE\tFINGERPRINT\tCREATED\tRECIPIENT")
			for _, k := range keys {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					k.ID, k.State, k.Fingerprint,
					time.Unix(k.CreatedUTC, 0).UTC().Format(time.RFC3339), k.Key)
			}
			return tw.Flush()
		},
	}
}

func keysAddCmd() *cobra.Command {
	var id, phrase string
	cmd := &cobra.Command{
		Use:   "add <age1...>",
		Short: "Register a backup recipient (saved with --words, imported without)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()
			rec, err := appCtx.Daemon.RegisterKey(ctx, domain.RegisterRequest{
				ID:       domain.KeyID(id),
				Key:      domain.AgeRecipient(args[0]),
				Mnemonic: phrase,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s)\n", rec.ID, rec.State)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "key id (default: random uuid)")
	cmd.Flags().StringVar(&phrase, "words", "", "recovery phrase proving the key was written down")
	return cmd
}

func keysRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a registered backup key",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()
			if err := appCtx.Daemon.RemoveKey(ctx, domain.KeyID(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}

func keysConfirmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <id> [words...]",
		Short: "Mark an unsaved key as saved by re-entering its phrase",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := phraseArgs(cmd, args[1:])
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()
			rec, err := appCtx.Daemon.ConfirmKey(ctx, domain.KeyID(args[0]), words.String())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Confirmed %s (%s)\n", rec.ID, rec.State)
			return nil
		},
	}
}

func keysExportCmd() *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the [backup] configuration section for saved and imported keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()
			b, err := appCtx.Daemon.ExportKeys(ctx, strings.ToLower(format))
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, b)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "toml", "output format: json, toml or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}
