package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VoidCRDev/Artisan/ajex"
	"github.com/VoidCRDev/Artisan/format"
)

func newTreeCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the syntax tree of a directive file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := ajex.ParseFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch outputFormat {
			case "outline":
				ajex.Walk(root, ajex.NewPrinter(out))
			case "nodes":
				fmt.Fprint(out, root.String())
			case "json":
				if err := format.NewTreeJSONEncoder(out).Encode(root); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				fmt.Fprintln(out)
			default:
				return fmt.Errorf("unknown format: %s (expected outline, nodes, or json)", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "outline", "output format (outline, nodes, json)")

	return cmd
}
