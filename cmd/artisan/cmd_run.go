package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/VoidCRDev/Artisan/config"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [config]",
		Short: "Apply the directives configured in " + config.DefaultFile,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				found, err := config.Find(".")
				if err != nil {
					return err
				}
				path = found
			}

			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if !cmd.Root().PersistentFlags().Changed("verbose") {
				logFile, _ := cmd.Root().PersistentFlags().GetString("log-file")
				configureLogging(cfg.Verbosity, logFile)
			}
			log := commonlog.GetLogger("artisan.run")

			e, err := newEditor(cfg.Directives, cfg.InheritSuperclassRules)
			if err != nil {
				return err
			}
			files, err := cfg.ClassFiles()
			if err != nil {
				return err
			}
			if len(files) == 0 {
				log.Warning("no class files matched", "patterns", cfg.Classes)
				return nil
			}

			for _, file := range files {
				if err := editFile(e, file, cfg.Output, cfg.Diff, cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			log.Notice("edited classes", "count", len(files), "output", cfg.Output)

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
}
