package main

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/VoidCRDev/Artisan/ajex"
)

func newMetaCmd() *cobra.Command {
	var deep bool

	cmd := &cobra.Command{
		Use:   "meta <file> [key]",
		Short: "Print metadata declared in a directive file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := ajex.ParseFile(args[0])
			if err != nil {
				return err
			}
			reader, err := ajex.NewReader(root)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) == 2 {
				value, ok := reader.MetadataValue(args[1], deep)
				if !ok {
					return fmt.Errorf("metadata %q not found", args[1])
				}
				fmt.Fprintln(out, value)
				return nil
			}

			var entries []ajex.MetadataResult
			for entry := range reader.AllMetadataValues(deep) {
				entries = append(entries, entry)
			}
			slices.SortFunc(entries, func(a, b ajex.MetadataResult) int {
				return cmp.Or(cmp.Compare(a.Key, b.Key), cmp.Compare(a.Value, b.Value))
			})
			for _, entry := range entries {
				fmt.Fprintf(out, "%s: %s\n", entry.Key, entry.Value)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&deep, "deep", false, "include metadata attached to directives")

	return cmd
}
