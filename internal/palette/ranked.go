package palette

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/codr1/chromapick/internal/models"
)

// Metric selects how Ranked measures distance between two colors.
type Metric string

const (
	// MetricPacked is the integer distance Nearest uses.
	MetricPacked Metric = "packed"
	// MetricLab is Euclidean distance in CIE L*a*b*.
	MetricLab Metric = "lab"
)

// ParseMetric accepts "packed" or "lab"; empty means packed.
func ParseMetric(value string) (Metric, error) {
	switch Metric(strings.ToLower(strings.TrimSpace(value))) {
	case "", MetricPacked:
		return MetricPacked, nil
	case MetricLab:
		return MetricLab, nil
	default:
		return "", fmt.Errorf("%w: unknown metric %q (want packed or lab)", ErrInvalidInput, value)
	}
}

// Match is a palette entry with its distance to the target.
type Match struct {
	Entry
	Distance float64 `json:"distance"`
}

// Ranked returns up to n entries ordered from nearest to farthest under metric.
// Entries at equal distance keep table order. n <= 0 returns every entry.
func (p *Palette) Ranked(hexColor string, n int, metric Metric) ([]Match, error) {
	if p.Len() == 0 {
		return nil, fmt.Errorf("%w: palette has no colors", ErrInvalidConfiguration)
	}
	target, err := models.ParsePacked(hexColor)
	if err != nil {
		return nil, err
	}

	var distance func(uint32) float64
	switch metric {
	case "", MetricPacked:
		distance = func(v uint32) float64 { return float64(packedDistance(target, v)) }
	case MetricLab:
		targetColor := toColorful(target)
		distance = func(v uint32) float64 { return targetColor.DistanceLab(toColorful(v)) }
	default:
		return nil, fmt.Errorf("%w: unknown metric %q", ErrInvalidInput, metric)
	}

	matches := make([]Match, 0, len(p.entries))
	for _, entry := range p.entries {
		matches = append(matches, Match{Entry: entry, Distance: distance(entry.Value)})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	if n > 0 && n < len(matches) {
		matches = matches[:n]
	}
	return matches, nil
}

func toColorful(value uint32) colorful.Color {
	return colorful.Color{
		R: float64((value>>16)&0xFF) / 255,
		G: float64((value>>8)&0xFF) / 255,
		B: float64(value&0xFF) / 255,
	}
}
