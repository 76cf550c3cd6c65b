package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/VoidCRDev/Artisan/ajex"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the tokens of a directive file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open directives: %w", err)
			}
			defer f.Close()

			var errs []error
			tz := ajex.NewTokenizer(f)
			for tz.More() {
				tok, err := tz.Next()
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", args[0], err)
					errs = append(errs, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%d\t%s\t%q\n", tok.Line, tok.ID, tok.Kind, tok.Text)
			}
			if len(errs) > 0 {
				return fmt.Errorf("%s: %d malformed lines: %w", args[0], len(errs), errors.Join(errs...))
			}
			return nil
		},
	}
}
