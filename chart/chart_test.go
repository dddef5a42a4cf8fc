package chart

import (
	"errors"
	"fmt"
	"image/color"
	"testing"

	"golang.org/x/text/language"
)

func TestInvalidInputError(t *testing.T) {
	err := Invalid("layout", "expected %d segments", 3)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected error to match ErrInvalidInput")
	}
	wrapped := fmt.Errorf("rendering: %w", err)
	var iie *InvalidInputError
	if !errors.As(wrapped, &iie) {
		t.Fatalf("expected wrapped error to unwrap to *InvalidInputError")
	}
	if iie.Op != "layout" {
		t.Errorf("expected op %q, got %q", "layout", iie.Op)
	}
	if got := err.Error(); got != "layout: expected 3 segments" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestNormalizeDegrees(t *testing.T) {
	for _, tc := range []struct {
		in, out float64
	}{
		{in: 0, out: 0},
		{in: 360, out: 0},
		{in: 370, out: 10},
		{in: -90, out: 270},
		{in: -720, out: 0},
		{in: 359.5, out: 359.5},
	} {
		if got := NormalizeDegrees(tc.in); got != tc.out {
			t.Errorf("NormalizeDegrees(%v): expected %v, got %v", tc.in, tc.out, got)
		}
	}
}

func TestCeilFloorClamp(t *testing.T) {
	if got := Ceil(2.1); got != 3 {
		t.Errorf("expected 3, got %v", got)
	}
	if got := Floor(float32(2.9)); got != 2 {
		t.Errorf("expected 2, got %v", got)
	}
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("expected 3, got %v", got)
	}
	if got := Clamp(-1.5, 0, 3); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}

func TestParseHex(t *testing.T) {
	for _, tc := range []struct {
		in      string
		out     color.NRGBA
		wantErr bool
	}{
		{in: "#2196f3", out: color.NRGBA{R: 0x21, G: 0x96, B: 0xf3, A: 0xff}},
		{in: "ff000080", out: color.NRGBA{R: 0xff, A: 0x80}},
		{in: "#0f0", out: color.NRGBA{G: 0xff, A: 0xff}},
		{in: " #FFFFFF ", out: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{in: "#12345", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
	} {
		got, err := ParseHex(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseHex(%q): expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHex(%q): unexpected error %v", tc.in, err)
		} else if got != tc.out {
			t.Errorf("ParseHex(%q): expected %v, got %v", tc.in, tc.out, got)
		}
	}
}

func TestPaletteColorWraps(t *testing.T) {
	if PaletteColor(len(Palette)) != Palette[0] {
		t.Errorf("expected palette to wrap around")
	}
	if WithAlpha(Palette[0], .5).A != 128 {
		t.Errorf("expected half alpha to be 128, got %d", WithAlpha(Palette[0], .5).A)
	}
}

func TestValueLabelFormat(t *testing.T) {
	en := ValueLabelConfig{Locale: language.English}
	for _, tc := range []struct {
		cfg   ValueLabelConfig
		value float64
		unit  string
		out   string
	}{
		{cfg: en, value: 1500, unit: "$", out: "1,500$"},
		{cfg: en, value: 12.5, unit: "kg", out: "12.5kg"},
		{cfg: en, value: 0.125, out: "0.125"},
		{cfg: en, value: 40, unit: "%", out: "40%"},
		{
			cfg: ValueLabelConfig{
				Locale:        language.English,
				DecimalPlaces: func(float64) int { return 0 },
			},
			value: 7,
			out:   "7",
		},
		{cfg: ValueLabelConfig{Locale: language.German}, value: 12.5, out: "12,5"},
	} {
		if got := tc.cfg.Format(tc.value, tc.unit); got != tc.out {
			t.Errorf("Format(%v, %q): expected %q, got %q", tc.value, tc.unit, tc.out, got)
		}
	}
}
