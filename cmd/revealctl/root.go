package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/avendel/revealx"
	"github.com/avendel/revealx/dom"
)

type rootFlags struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "revealctl",
		Short:         "one-shot visibility activation engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "YAML engine config (defaults used when empty)")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newScanCmd(flags))
	cmd.AddCommand(newSimulateCmd(flags))
	cmd.AddCommand(newThemeCmd())
	return cmd
}

func (f *rootFlags) engineConfig() (revealx.Config, error) {
	if f.configPath == "" {
		return revealx.DefaultConfig(), nil
	}
	return revealx.LoadConfig(f.configPath)
}

// markers reads the markers section of the same config file; without a
// config file the scanner falls back to the default marker names.
func (f *rootFlags) markers() (dom.Markers, error) {
	if f.configPath == "" {
		return dom.DefaultMarkers(), nil
	}
	return dom.LoadMarkers(f.configPath)
}

func (f *rootFlags) logger() (*zap.Logger, error) {
	if !f.debug {
		return zap.NewNop(), nil
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}
