package colour

import (
	"errors"
	"image/color"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGB
		wantErr bool
	}{
		{name: "uppercase with hash", input: "#FF0000", want: RGB{R: 255}},
		{name: "lowercase with hash", input: "#00ff00", want: RGB{G: 255}},
		{name: "no hash", input: "0000ff", want: RGB{B: 255}},
		{name: "mixed case", input: "#1a2B3c", want: RGB{R: 0x1a, G: 0x2b, B: 0x3c}},
		{name: "surrounding whitespace", input: "  #808080\n", want: RGB{R: 128, G: 128, B: 128}},
		{name: "empty", input: "", wantErr: true},
		{name: "hash only", input: "#", wantErr: true},
		{name: "shorthand", input: "#FFF", wantErr: true},
		{name: "too long", input: "#FF00000", wantErr: true},
		{name: "non hex", input: "#GG0000", wantErr: true},
		{name: "signed", input: "+FFFFF", wantErr: true},
		{name: "double hash", input: "##FF000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedColour) {
					t.Fatalf("ParseHex(%q) error = %v, want ErrMalformedColour", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	// Every channel value, on each channel, survives parse and format.
	for v := 0; v < 256; v++ {
		for _, rgb := range []RGB{{R: uint8(v)}, {G: uint8(v)}, {B: uint8(v)}, {R: uint8(v), G: uint8(255 - v), B: uint8(v / 2)}} {
			hex := rgb.Hex()
			got, err := ParseHex(hex)
			if err != nil {
				t.Fatalf("ParseHex(%q): %v", hex, err)
			}
			if got.Hex() != hex {
				t.Fatalf("round trip %q -> %q", hex, got.Hex())
			}
		}
	}
}

func TestNormaliseHex(t *testing.T) {
	got, err := NormaliseHex("abcdef")
	if err != nil {
		t.Fatalf("NormaliseHex: %v", err)
	}
	if got != "#ABCDEF" {
		t.Errorf("NormaliseHex() = %q, want %q", got, "#ABCDEF")
	}

	if _, err := NormaliseHex("nope"); !errors.Is(err, ErrMalformedColour) {
		t.Errorf("NormaliseHex(nope) error = %v, want ErrMalformedColour", err)
	}
}

func TestRGBHex(t *testing.T) {
	tests := []struct {
		rgb  RGB
		want string
	}{
		{RGB{R: 255}, "#FF0000"},
		{RGB{B: 255}, "#0000FF"},
		{RGB{R: 1, G: 2, B: 3}, "#010203"},
		{RGB{}, "#000000"},
		{RGB{R: 255, G: 255, B: 255}, "#FFFFFF"},
	}

	for _, tt := range tests {
		if got := tt.rgb.Hex(); got != tt.want {
			t.Errorf("%+v.Hex() = %q, want %q", tt.rgb, got, tt.want)
		}
	}
}

func TestPacked(t *testing.T) {
	rgb := RGB{R: 0x12, G: 0x34, B: 0x56}
	if got := rgb.Packed(); got != 0x123456 {
		t.Errorf("Packed() = %#x, want 0x123456", got)
	}
	if got := FromPacked(0xFF123456); got != rgb {
		t.Errorf("FromPacked() = %+v, want %+v", got, rgb)
	}
}

func TestToRGB(t *testing.T) {
	tests := []struct {
		name  string
		color color.Color
		want  RGB
	}{
		{"red", color.RGBA{R: 255, A: 255}, RGB{R: 255}},
		{"grey16", color.Gray16{Y: 0x8080}, RGB{R: 128, G: 128, B: 128}},
		{"nrgba opaque", color.NRGBA{R: 10, G: 20, B: 30, A: 255}, RGB{R: 10, G: 20, B: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRGB(tt.color); got != tt.want {
				t.Errorf("ToRGB() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
