package assets

import "embed"

// PalettesDir holds one named-color table per file; the file stem is the palette name.
const PalettesDir = "palettes"

//go:embed palettes/*.txt
var PalettesFS embed.FS
