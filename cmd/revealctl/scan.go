package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avendel/revealx"
	"github.com/avendel/revealx/dom"
)

func newScanCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <page.html>",
		Short: "list the activation targets found in a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			markers, err := flags.markers()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			doc, err := dom.Parse(f, markers)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, reg := range doc.Scan() {
				for _, key := range reg.Keys {
					switch reg.Kind {
					case revealx.KindCounter:
						fmt.Fprintf(out, "%-12s %s (target %q)\n", reg.Kind, key, reg.Targets[key])
					default:
						fmt.Fprintf(out, "%-12s %s\n", reg.Kind, key)
					}
				}
			}
			fmt.Fprintf(out, "%d element(s), page height %.0fpx\n", doc.Len(), doc.Height())
			return nil
		},
	}
}
