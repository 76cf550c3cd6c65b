package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VoidCRDev/Artisan/ajex"
)

func newGrammarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grammar",
		Short: "Print the EBNF grammar of the directive format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ajex.Grammar(); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), ajex.GrammarSource)
			return nil
		},
	}
}
