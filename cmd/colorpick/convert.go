package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/codr1/chromapick/internal/models"
)

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [--] (R G B | '#RRGGBB')",
		Short: "Show hex, RGB, HSL, brightness and name for a color",
		Long: `Converts a color given as three channel values or a hex string.
Channels outside 0-255 are clamped. Put -- before the channels when one of
them is negative, otherwise it is read as a flag.`,
		Example: `  colorpick convert 255 0 0
  colorpick convert '#663399'
  colorpick convert -- 300 -4 0`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 && len(args) != 3 {
				return fmt.Errorf("convert takes a hex color or three channel values, got %d args", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			sample, err := sampleFromArgs(args)
			if err != nil {
				return err
			}
			_, pal, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			derived, err := models.Derive(sample, pal)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), derived.Summary())
			return nil
		},
	}
}

func sampleFromArgs(args []string) (models.RGB, error) {
	if len(args) == 1 {
		return models.ParseHex(args[0])
	}

	channels := make([]int, 3)
	for i, arg := range args {
		value, err := strconv.Atoi(arg)
		if err != nil {
			return models.RGB{}, fmt.Errorf("channel %q is not an integer: %w", arg, models.ErrInvalidInput)
		}
		channels[i] = value
	}
	return models.NewRGB(channels[0], channels[1], channels[2]), nil
}
