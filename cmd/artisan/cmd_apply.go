package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newApplyCmd() *cobra.Command {
	var outDir string
	var diff bool
	var inheritSuperclass bool

	cmd := &cobra.Command{
		Use:   "apply <directives> <class>...",
		Short: "Apply a directive file to class files",
		Long: `Apply a directive file to class files.

Without --output the class files are rewritten in place. With --output each
class is written below that directory under its package path.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEditor(args[0], inheritSuperclass)
			if err != nil {
				return err
			}
			for _, path := range args[1:] {
				if err := editFile(e, path, outDir, diff, cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			prepared, err := e.Prepared()
			if err != nil {
				return err
			}
			if failures := prepared.ParseFailures(); len(failures) > 0 {
				return fmt.Errorf("%d directives were rejected", len(failures))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", "", "directory to write edited classes to")
	cmd.Flags().BoolVar(&diff, "diff", false, "print the changed member flags")
	cmd.Flags().BoolVar(&inheritSuperclass, "inherit-superclass", false, "also apply rules declared on the direct superclass")

	return cmd
}
