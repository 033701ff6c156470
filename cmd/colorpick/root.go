package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codr1/chromapick/internal/palette"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "colorpick",
		Short: "Convert colors and match them against named palettes",
		Long: `colorpick runs the picker's color conversions and palette matching
from the command line, without a camera or browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	cmd.PersistentFlags().String("palette", palette.DefaultName, "Palette to match against")
	cmd.PersistentFlags().String("palette-file", "", "YAML palette to load alongside the builtins")

	cmd.AddCommand(newConvertCmd(), newNearestCmd(), newPalettesCmd(), newSVGCmd())
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadRegistry builds the registry from the persistent flags and returns the
// palette selected with --palette.
func loadRegistry(cmd *cobra.Command) (*palette.Registry, *palette.Palette, error) {
	name, _ := cmd.Flags().GetString("palette")
	file, _ := cmd.Flags().GetString("palette-file")

	registry, err := palette.LoadRegistryFile(palette.DefaultName, file)
	if err != nil {
		return nil, nil, err
	}

	selected, ok := registry.Get(name)
	if !ok {
		return nil, nil, fmt.Errorf("unknown palette %q (have %v)", name, registry.Names())
	}
	return registry, selected, nil
}
