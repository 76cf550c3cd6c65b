package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VoidCRDev/Artisan/classfile"
	"github.com/VoidCRDev/Artisan/format"
)

func newDumpCmd() *cobra.Command {
	var dumpFormat string

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Dump the members and flags of a .class file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			class, err := classfile.ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("parse class file: %w", err)
			}

			out := cmd.OutOrStdout()
			var encoder format.Encoder
			switch dumpFormat {
			case "json":
				encoder = format.NewJSONEncoder(out)
			case "line":
				encoder = format.NewLineEncoder(out)
			default:
				return fmt.Errorf("unknown format: %s (expected json or line)", dumpFormat)
			}

			if err := encoder.Encode(class); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if dumpFormat == "json" {
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "line", "output format (json, line)")

	return cmd
}
