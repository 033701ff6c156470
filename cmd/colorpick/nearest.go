package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codr1/chromapick/internal/palette"
)

func newNearestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nearest '#RRGGBB'",
		Short: "List the closest palette colors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			top, _ := cmd.Flags().GetInt("top")
			rawMetric, _ := cmd.Flags().GetString("metric")

			if top < 1 {
				return fmt.Errorf("--top must be at least 1")
			}
			metric, err := palette.ParseMetric(rawMetric)
			if err != nil {
				return err
			}
			_, pal, err := loadRegistry(cmd)
			if err != nil {
				return err
			}

			matches, err := pal.Ranked(args[0], top, metric)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, match := range matches {
				fmt.Fprintf(out, "%d. %-20s %s  %g\n", i+1, match.Name, match.Hex, match.Distance)
			}
			return nil
		},
	}

	cmd.Flags().Int("top", 1, "Number of matches to show")
	cmd.Flags().String("metric", string(palette.MetricPacked), "Distance metric: packed or lab")
	return cmd
}
