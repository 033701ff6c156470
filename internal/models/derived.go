package models

import (
	"errors"
	"fmt"
)

// NameMatcher names a hex color against some palette.
type NameMatcher interface {
	NearestName(hexColor string) (string, error)
}

// DerivedColor is everything the picker shows for one sample.
type DerivedColor struct {
	RGB       RGB    `json:"rgb"`
	Hex       string `json:"hex"`
	HSL       HSL    `json:"hsl"`
	Luminance int    `json:"luminance"`
	Name      string `json:"name"`
	TextColor string `json:"textColor"`
}

// Derive converts a sample and names it with matcher.
func Derive(sample RGB, matcher NameMatcher) (DerivedColor, error) {
	if matcher == nil {
		return DerivedColor{}, errors.New("name matcher is required")
	}

	sample = NewRGB(sample.R, sample.G, sample.B)
	hex := sample.Hex()
	name, err := matcher.NearestName(hex)
	if err != nil {
		return DerivedColor{}, fmt.Errorf("match %s: %w", hex, err)
	}

	return DerivedColor{
		RGB:       sample,
		Hex:       hex,
		HSL:       sample.HSL(),
		Luminance: sample.Luminance(),
		Name:      name,
		TextColor: ContrastText(sample),
	}, nil
}

// Summary is the single-line description shown in the color info panel.
func (d DerivedColor) Summary() string {
	return fmt.Sprintf(
		"HEX: %s | RGB: (%d, %d, %d) | HSL: (%d, %d%%, %d%%) | Brightness: %d%% | Name: %s",
		d.Hex,
		d.RGB.R, d.RGB.G, d.RGB.B,
		d.HSL.H, d.HSL.S, d.HSL.L,
		d.Luminance,
		d.Name,
	)
}
