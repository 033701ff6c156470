// internal/models/color.go
package models

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const darkTextColor = "#000000"
const lightTextColor = "#FFFFFF"

// ErrInvalidInput reports a malformed color value supplied by a caller.
var ErrInvalidInput = errors.New("invalid input")

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func IsHexColor(value string) bool {
	return hexColorRegex.MatchString(strings.TrimSpace(value))
}

// RGB is a single sampled pixel. Channels are always kept in [0,255].
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// HSL holds rounded hue (degrees, [0,360)), saturation and lightness (percent).
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// Clamp limits a channel value to [0,255]. Out-of-range samples are clamped
// rather than rejected or wrapped.
func Clamp(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return v
	}
}

// NewRGB builds a sample from raw channel values, clamping each one.
func NewRGB(r, g, b int) RGB {
	return RGB{R: Clamp(r), G: Clamp(g), B: Clamp(b)}
}

func (c RGB) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

// Packed returns the color as a 24-bit 0xRRGGBB integer.
func (c RGB) Packed() uint32 {
	return uint32(Clamp(c.R))<<16 | uint32(Clamp(c.G))<<8 | uint32(Clamp(c.B))
}

func (c RGB) Hex() string { return ToHex(c.R, c.G, c.B) }
func (c RGB) HSL() HSL    { return ToHSL(c.R, c.G, c.B) }
func (c RGB) Luminance() int {
	return Luminance(c.R, c.G, c.B)
}

func (h HSL) String() string {
	return fmt.Sprintf("(%d,%d%%,%d%%)", h.H, h.S, h.L)
}

// ToHex formats the channels as "#RRGGBB" in uppercase.
func ToHex(r, g, b int) string {
	return fmt.Sprintf("#%02X%02X%02X", Clamp(r), Clamp(g), Clamp(b))
}

// ToHSL converts a sample to hue/saturation/lightness. Gray samples have
// zero hue and saturation.
func ToHSL(r, g, b int) HSL {
	rf := float64(Clamp(r)) / 255
	gf := float64(Clamp(g)) / 255
	bf := float64(Clamp(b)) / 255

	maxC := math.Max(rf, math.Max(gf, bf))
	minC := math.Min(rf, math.Min(gf, bf))
	l := (maxC + minC) / 2

	var h, s float64
	if maxC != minC {
		d := maxC - minC
		if l > 0.5 {
			s = d / (2 - maxC - minC)
		} else {
			s = d / (maxC + minC)
		}

		switch maxC {
		case rf:
			h = (gf - bf) / d
			if gf < bf {
				h += 6
			}
		case gf:
			h = (bf-rf)/d + 2
		default:
			h = (rf-gf)/d + 4
		}
		h /= 6
	}

	hue := int(math.Round(h * 360))
	if hue >= 360 {
		hue -= 360
	}
	return HSL{
		H: hue,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}

// Luminance returns the luma-weighted brightness of a sample as a percentage.
// This is Rec. 601 luma, not photometric luminance.
func Luminance(r, g, b int) int {
	luma := 0.299*float64(Clamp(r)) + 0.587*float64(Clamp(g)) + 0.114*float64(Clamp(b))
	return int(math.Round(luma / 255 * 100))
}

// ParseHex decodes a "#RRGGBB" string (any case, surrounding space ignored).
func ParseHex(hexColor string) (RGB, error) {
	value, err := ParsePacked(hexColor)
	if err != nil {
		return RGB{}, err
	}
	return RGB{
		R: int((value >> 16) & 0xFF),
		G: int((value >> 8) & 0xFF),
		B: int(value & 0xFF),
	}, nil
}

// ParsePacked decodes a "#RRGGBB" string into a 24-bit integer.
func ParsePacked(hexColor string) (uint32, error) {
	trimmed := strings.TrimSpace(hexColor)
	if !hexColorRegex.MatchString(trimmed) {
		return 0, fmt.Errorf("%w: hex color %q must look like #AABBCC", ErrInvalidInput, hexColor)
	}
	value, err := strconv.ParseUint(strings.TrimPrefix(trimmed, "#"), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: hex color %q", ErrInvalidInput, hexColor)
	}
	return uint32(value), nil
}

// ContrastText picks black or white text, whichever reads better on c.
func ContrastText(c RGB) string {
	darkRatio := contrastRatio(RGB{}, c)
	lightRatio := contrastRatio(RGB{R: 255, G: 255, B: 255}, c)
	if lightRatio > darkRatio {
		return lightTextColor
	}
	return darkTextColor
}

func contrastRatio(text, background RGB) float64 {
	textL := relativeLuminance(text)
	backgroundL := relativeLuminance(background)
	lightest := math.Max(textL, backgroundL)
	darkest := math.Min(textL, backgroundL)
	return (lightest + 0.05) / (darkest + 0.05)
}

func relativeLuminance(c RGB) float64 {
	rl := srgbToLinear(float64(Clamp(c.R)) / 255)
	gl := srgbToLinear(float64(Clamp(c.G)) / 255)
	bl := srgbToLinear(float64(Clamp(c.B)) / 255)

	return 0.2126*rl + 0.7152*gl + 0.0722*bl
}

func srgbToLinear(value float64) float64 {
	if value <= 0.03928 {
		return value / 12.92
	}
	return math.Pow((value+0.055)/1.055, 2.4)
}
