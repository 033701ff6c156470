package main

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codr1/chromapick/internal/models"
	"github.com/codr1/chromapick/internal/palette"
)

// Matches fill and stroke attributes with a hex or keyword value.
var svgColorRegex = regexp.MustCompile(`\b(fill|stroke)=["'](#?[0-9a-fA-F]{3,6}|[a-zA-Z]+)["']`)

// colorUsage counts one color value under one attribute.
type colorUsage struct {
	Attribute string
	Color     string
	Count     int
}

func newSVGCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "svg FILE",
		Short: "Name the fill and stroke colors used in an SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			top, _ := cmd.Flags().GetInt("top")
			rawMetric, _ := cmd.Flags().GetString("metric")

			metric, err := palette.ParseMetric(rawMetric)
			if err != nil {
				return err
			}
			_, pal, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read svg: %w", err)
			}

			out := cmd.OutOrStdout()
			attribute := ""
			for _, usage := range scanSVGColors(data) {
				if usage.Attribute != attribute {
					attribute = usage.Attribute
					fmt.Fprintf(out, "Attribute: %s\n", attribute)
				}
				fmt.Fprintf(out, "  Color: %s, Count: %d\n", usage.Color, usage.Count)

				hex, ok := expandHex(usage.Color)
				if !ok {
					fmt.Fprintln(out, "    not a hex color, skipped")
					continue
				}
				matches, err := pal.Ranked(hex, top, metric)
				if err != nil {
					return err
				}
				for _, match := range matches {
					fmt.Fprintf(out, "    %s (%s), Distance: %.4f\n", match.Name, match.Hex, match.Distance)
				}
			}
			return nil
		},
	}

	cmd.Flags().Int("top", 1, "Matches to show per color; 0 shows the whole palette")
	cmd.Flags().String("metric", string(palette.MetricPacked), "Distance metric: packed or lab")
	return cmd
}

// scanSVGColors counts color attributes, ordered by attribute, then by
// descending count, then by color.
func scanSVGColors(data []byte) []colorUsage {
	counts := make(map[[2]string]int)
	for _, match := range svgColorRegex.FindAllSubmatch(data, -1) {
		counts[[2]string{string(match[1]), string(match[2])}]++
	}

	usages := make([]colorUsage, 0, len(counts))
	for key, count := range counts {
		usages = append(usages, colorUsage{Attribute: key[0], Color: key[1], Count: count})
	}
	sort.Slice(usages, func(i, j int) bool {
		a, b := usages[i], usages[j]
		if a.Attribute != b.Attribute {
			return a.Attribute < b.Attribute
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Color < b.Color
	})
	return usages
}

// expandHex normalizes #RGB and #RRGGBB values to #RRGGBB.
func expandHex(value string) (string, bool) {
	if len(value) == 4 && value[0] == '#' {
		var b strings.Builder
		b.WriteByte('#')
		for _, c := range value[1:] {
			b.WriteRune(c)
			b.WriteRune(c)
		}
		value = b.String()
	}
	if !models.IsHexColor(value) {
		return "", false
	}
	return strings.ToUpper(value), true
}
