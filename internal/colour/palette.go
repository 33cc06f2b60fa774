package colour

import (
	"errors"
	"math"
	"strings"
)

// UnknownName is shown for colours that cannot be parsed.
const UnknownName = "Unknown"

// PaletteEntry is one named colour of the reference palette.
type PaletteEntry struct {
	Hex  string `json:"hex"`
	Name string `json:"name"`
	RGB  RGB    `json:"rgb"`
}

// referencePalette is the fixed table used for naming. Order matters: on equal
// distance the earlier entry wins.
var referencePalette = buildPalette([]struct{ hex, name string }{
	{"#000000", "Black"},
	{"#FFFFFF", "White"},
	{"#FF0000", "Red"},
	{"#00FF00", "Lime"},
	{"#0000FF", "Blue"},
	{"#FFFF00", "Yellow"},
	{"#00FFFF", "Cyan"},
	{"#FF00FF", "Magenta"},
	{"#C0C0C0", "Silver"},
	{"#808080", "Gray"},
	{"#800000", "Maroon"},
	{"#808000", "Olive"},
	{"#008000", "Green"},
	{"#800080", "Purple"},
	{"#008080", "Teal"},
	{"#000080", "Navy"},
	{"#FFA500", "Orange"},
	{"#FFC0CB", "Pink"},
	{"#A52A2A", "Brown"},
	{"#FFD700", "Gold"},
	{"#F5F5DC", "Beige"},
	{"#FF7F50", "Coral"},
	{"#FA8072", "Salmon"},
	{"#40E0D0", "Turquoise"},
	{"#4B0082", "Indigo"},
	{"#EE82EE", "Violet"},
	{"#E6E6FA", "Lavender"},
	{"#DC143C", "Crimson"},
	{"#87CEEB", "Sky Blue"},
	{"#98FF98", "Mint"},
	{"#FF6B35", "Figerout Orange"},
	{"#2E3192", "Figerout Indigo"},
})

// exactNames indexes referencePalette by uppercase hex.
var exactNames = func() map[string]string {
	m := make(map[string]string, len(referencePalette))
	for _, e := range referencePalette {
		if _, dup := m[e.Hex]; !dup {
			m[e.Hex] = e.Name
		}
	}
	return m
}()

func buildPalette(pairs []struct{ hex, name string }) []PaletteEntry {
	entries := make([]PaletteEntry, len(pairs))
	for i, p := range pairs {
		rgb := MustParseHex(p.hex)
		entries[i] = PaletteEntry{Hex: rgb.Hex(), Name: p.name, RGB: rgb}
	}
	return entries
}

// ReferencePalette returns a copy of the reference palette in lookup order.
func ReferencePalette() []PaletteEntry {
	out := make([]PaletteEntry, len(referencePalette))
	copy(out, referencePalette)
	return out
}

// Match is the result of a nearest-name lookup.
type Match struct {
	Entry    PaletteEntry `json:"entry"`
	Distance float64      `json:"distance"`
	Exact    bool         `json:"exact"`
}

// Nearest finds the reference entry closest to rgb by Euclidean distance in
// RGB space. Ties go to the entry that appears first in the palette.
func Nearest(rgb RGB) Match {
	if name, ok := exactNames[rgb.Hex()]; ok {
		return Match{Entry: PaletteEntry{Hex: rgb.Hex(), Name: name, RGB: rgb}, Exact: true}
	}

	best := 0
	minDist := math.MaxFloat64
	for i, e := range referencePalette {
		d := Distance(rgb, e.RGB)
		if d < minDist {
			minDist = d
			best = i
		}
	}

	return Match{Entry: referencePalette[best], Distance: minDist}
}

// Name returns the name of the reference colour nearest to hex.
// Malformed input returns an error wrapping ErrMalformedColour.
func Name(hex string) (string, error) {
	if name, ok := exactNames[strings.ToUpper(strings.TrimSpace(hex))]; ok {
		return name, nil
	}

	rgb, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	return Nearest(rgb).Entry.Name, nil
}

// NameOrUnknown is Name with UnknownName as the fallback for malformed input.
func NameOrUnknown(hex string) string {
	name, err := Name(hex)
	if errors.Is(err, ErrMalformedColour) {
		return UnknownName
	}
	return name
}

// Distance returns the Euclidean distance between two colours in RGB space.
func Distance(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
