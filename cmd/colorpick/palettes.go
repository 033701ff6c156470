package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPalettesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palettes",
		Short: "List available palettes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, selected, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range registry.Names() {
				pal, _ := registry.Get(name)
				marker := ""
				if name == selected.Name() {
					marker = " *"
				}
				fmt.Fprintf(out, "%s\t%d colors%s\n", name, pal.Len(), marker)
			}
			return nil
		},
	}
}
