package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/VoidCRDev/Artisan/lsp"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Report problems in directive files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				content, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read directives: %w", err)
				}

				doc := lsp.Analyze(path, string(content))
				for _, d := range doc.Diagnostics {
					severity := "warning"
					if d.Severity != nil && *d.Severity == protocol.DiagnosticSeverityError {
						severity = "error"
						failed++
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s:%d: %s: %s\n", path, d.Range.Start.Line+1, severity, d.Message)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d errors found", failed)
			}
			return nil
		},
	}
}
