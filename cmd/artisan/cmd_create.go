package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VoidCRDev/Artisan/classfile"
	"github.com/VoidCRDev/Artisan/editor"
	"github.com/VoidCRDev/Artisan/extension/access"
)

func newCreateCmd() *cobra.Command {
	var name string
	var super string
	var interfaces []string
	var fields []string
	var methods []string
	var outDir string

	cmd := &cobra.Command{
		Use:   "create <directives>",
		Short: "Generate a new class and apply a directive file to it",
		Long: `Generate a new class and apply a directive file to it.

Members are given as modifiers followed by name and descriptor:

  artisan create rules.ajex --name net/example/Made \
      --field "private static count I" --method "public run ()V"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEditor(args[0], false)
			if err != nil {
				return err
			}

			builder := classfile.NewBuilder(name).Super(super).Interfaces(interfaces...)
			for _, decl := range fields {
				flags, memberName, desc, err := parseMember(decl)
				if err != nil {
					return fmt.Errorf("field %q: %w", decl, err)
				}
				builder.Field(flags, memberName, desc)
			}
			for _, decl := range methods {
				flags, memberName, desc, err := parseMember(decl)
				if err != nil {
					return fmt.Errorf("method %q: %w", decl, err)
				}
				builder.Method(flags, memberName, desc)
			}

			path := editor.OutputPath(outDir, name)
			result, err := editor.NewCreator(e, builder).GenerateAndWrite(path)
			if err != nil {
				return err
			}
			if err := result.Err(); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "internal name of the class, e.g. net/example/Made")
	cmd.Flags().StringVar(&super, "super", "java/lang/Object", "internal name of the superclass")
	cmd.Flags().StringSliceVar(&interfaces, "interface", nil, "internal name of an implemented interface (repeatable)")
	cmd.Flags().StringArrayVar(&fields, "field", nil, `field as "modifiers... name descriptor" (repeatable)`)
	cmd.Flags().StringArrayVar(&methods, "method", nil, `method as "modifiers... name descriptor" (repeatable)`)
	cmd.Flags().StringVarP(&outDir, "output", "o", ".", "directory to write the class to")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// parseMember reads "modifiers... name descriptor", using the same
// modifier keywords as access rules.
func parseMember(decl string) (classfile.AccessFlags, string, string, error) {
	parts := strings.Fields(decl)
	if len(parts) < 2 {
		return 0, "", "", errors.New("want modifiers, name and descriptor")
	}
	var flags classfile.AccessFlags
	for _, mod := range parts[:len(parts)-2] {
		flag, err := access.ParseScope(mod)
		if err != nil {
			return 0, "", "", err
		}
		flags |= flag
	}
	return flags, parts[len(parts)-2], parts[len(parts)-1], nil
}
