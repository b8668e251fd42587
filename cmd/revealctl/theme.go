package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/avendel/revealx/prefs"
)

func newThemeCmd() *cobra.Command {
	var prefsPath string

	cmd := &cobra.Command{
		Use:   "theme",
		Short: "toggle the persisted dark-mode preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := prefsPath
			if path == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				path = filepath.Join(home, ".revealx", "prefs.yaml")
			}

			store, err := prefs.Open(path)
			if err != nil {
				return err
			}
			dark, err := store.Toggle()
			if err != nil {
				return err
			}
			if dark {
				fmt.Fprintln(cmd.OutOrStdout(), "dark mode: on")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "dark mode: off")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prefsPath, "prefs", "", "preference file (default ~/.revealx/prefs.yaml)")
	return cmd
}
