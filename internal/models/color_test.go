package models

import (
	"errors"
	"regexp"
	"testing"
)

func TestIsHexColor(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "empty", value: "", want: false},
		{name: "whitespace", value: "   ", want: false},
		{name: "missing_hash", value: "AABBCC", want: false},
		{name: "short_hex", value: "#ABC", want: false},
		{name: "long_hex", value: "#AABBCCDD", want: false},
		{name: "invalid_char", value: "#AABBCG", want: false},
		{name: "lowercase_hex", value: "#aabbcc", want: true},
		{name: "uppercase_hex", value: "#AABBCC", want: true},
		{name: "trimmed_hex", value: "  #AABBCC  ", want: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsHexColor(test.value); got != test.want {
				t.Fatalf("IsHexColor(%q) = %t, want %t", test.value, got, test.want)
			}
		})
	}
}

func TestToHex(t *testing.T) {
	tests := []struct {
		r, g, b int
		want    string
	}{
		{0, 0, 0, "#000000"},
		{255, 255, 255, "#FFFFFF"},
		{255, 0, 0, "#FF0000"},
		{1, 2, 3, "#010203"},
		{171, 205, 239, "#ABCDEF"},
		{-20, 300, 16, "#00FF10"},
	}

	for _, test := range tests {
		if got := ToHex(test.r, test.g, test.b); got != test.want {
			t.Fatalf("ToHex(%d, %d, %d) = %q, want %q", test.r, test.g, test.b, got, test.want)
		}
	}
}

func TestToHexRoundTrip(t *testing.T) {
	pattern := regexp.MustCompile(`^#[0-9A-F]{6}$`)

	// Full cube in steps; every channel value is still visited on each axis.
	for r := 0; r < 256; r += 3 {
		for g := 0; g < 256; g += 5 {
			for b := 0; b < 256; b++ {
				hex := ToHex(r, g, b)
				if !pattern.MatchString(hex) {
					t.Fatalf("ToHex(%d, %d, %d) = %q, not uppercase #RRGGBB", r, g, b, hex)
				}
				got, err := ParseHex(hex)
				if err != nil {
					t.Fatalf("ParseHex(%q) error = %v", hex, err)
				}
				if got != (RGB{R: r, G: g, B: b}) {
					t.Fatalf("ParseHex(%q) = %+v, want (%d,%d,%d)", hex, got, r, g, b)
				}
			}
		}
	}
}

func TestToHSL(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b int
		want    HSL
	}{
		{name: "red", r: 255, g: 0, b: 0, want: HSL{H: 0, S: 100, L: 50}},
		{name: "black", r: 0, g: 0, b: 0, want: HSL{H: 0, S: 0, L: 0}},
		{name: "white", r: 255, g: 255, b: 255, want: HSL{H: 0, S: 0, L: 100}},
		{name: "gray", r: 128, g: 128, b: 128, want: HSL{H: 0, S: 0, L: 50}},
		{name: "lime", r: 0, g: 255, b: 0, want: HSL{H: 120, S: 100, L: 50}},
		{name: "blue", r: 0, g: 0, b: 255, want: HSL{H: 240, S: 100, L: 50}},
		{name: "magenta", r: 255, g: 0, b: 255, want: HSL{H: 300, S: 100, L: 50}},
		{name: "rebecca_purple", r: 102, g: 51, b: 153, want: HSL{H: 270, S: 50, L: 40}},
		{name: "crimson", r: 220, g: 20, b: 60, want: HSL{H: 348, S: 83, L: 47}},
		// hue 359.76 rounds up to 360 and wraps
		{name: "wraps_to_zero", r: 255, g: 0, b: 1, want: HSL{H: 0, S: 100, L: 50}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ToHSL(test.r, test.g, test.b)
			if got != test.want {
				t.Fatalf("ToHSL(%d, %d, %d) = %+v, want %+v", test.r, test.g, test.b, got, test.want)
			}
		})
	}
}

func TestToHSLRange(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 15 {
			for b := 0; b < 256; b += 15 {
				hsl := ToHSL(r, g, b)
				if hsl.H < 0 || hsl.H >= 360 || hsl.S < 0 || hsl.S > 100 || hsl.L < 0 || hsl.L > 100 {
					t.Fatalf("ToHSL(%d, %d, %d) = %+v out of range", r, g, b, hsl)
				}
			}
		}
	}
}

func TestLuminance(t *testing.T) {
	tests := []struct {
		r, g, b int
		want    int
	}{
		{255, 255, 255, 100},
		{0, 0, 0, 0},
		{255, 0, 0, 30},
		{0, 255, 0, 59},
		{0, 0, 255, 11},
		{128, 128, 128, 50},
	}

	for _, test := range tests {
		if got := Luminance(test.r, test.g, test.b); got != test.want {
			t.Fatalf("Luminance(%d, %d, %d) = %d, want %d", test.r, test.g, test.b, got, test.want)
		}
	}
}

func TestConversionsArePure(t *testing.T) {
	if ToHex(12, 34, 56) != ToHex(12, 34, 56) {
		t.Fatalf("ToHex not stable")
	}
	if ToHSL(12, 34, 56) != ToHSL(12, 34, 56) {
		t.Fatalf("ToHSL not stable")
	}
	if Luminance(12, 34, 56) != Luminance(12, 34, 56) {
		t.Fatalf("Luminance not stable")
	}
}

func TestParseHexRejectsMalformed(t *testing.T) {
	for _, value := range []string{"", "#12345", "#1234567", "123456", "#12345G", "##12345"} {
		if _, err := ParseHex(value); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("ParseHex(%q) error = %v, want ErrInvalidInput", value, err)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := NewRGB(-1, 128, 999); got != (RGB{R: 0, G: 128, B: 255}) {
		t.Fatalf("NewRGB clamp = %+v", got)
	}
	if got := (RGB{R: 300, G: -5, B: 1}).Packed(); got != 0xFF0001 {
		t.Fatalf("Packed() = %06X, want FF0001", got)
	}
}

func TestContrastText(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
		want string
	}{
		{name: "white_bg", c: RGB{255, 255, 255}, want: darkTextColor},
		{name: "black_bg", c: RGB{0, 0, 0}, want: lightTextColor},
		{name: "yellow_bg", c: RGB{255, 255, 0}, want: darkTextColor},
		{name: "navy_bg", c: RGB{0, 0, 128}, want: lightTextColor},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ContrastText(test.c); got != test.want {
				t.Fatalf("ContrastText(%+v) = %s, want %s", test.c, got, test.want)
			}
		})
	}
}
