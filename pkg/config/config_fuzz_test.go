package config

import (
	"math"
	"testing"
)

func FuzzGetEnvInt(f *testing.F) {
	f.Add("42")
	f.Add("-1")
	f.Add("")
	f.Add("not-a-number")
	f.Add("9999999999999999999999")
	f.Add("  123  ")

	f.Fuzz(func(t *testing.T, input string) {
		t.Setenv("FUZZ_TEST_INT", input)

		// Should never panic, always return fallback or parsed value
		_ = getEnvInt("FUZZ_TEST_INT", 42)
	})
}

func FuzzGetEnvFloat(f *testing.F) {
	f.Add("8.66")
	f.Add("-0")
	f.Add("1e309")
	f.Add("NaN")
	f.Add("0x1p-2")
	f.Add("eight")

	f.Fuzz(func(t *testing.T, input string) {
		t.Setenv("FUZZ_TEST_FLOAT", input)

		got := getEnvFloat("FUZZ_TEST_FLOAT", 8.66)
		cfg := validConfig()
		cfg.BaseTemperature = got
		err := cfg.Validate()
		if (math.IsNaN(got) || math.IsInf(got, 0)) && err == nil {
			t.Fatalf("non-finite base temperature %v accepted", got)
		}
	})
}

func FuzzParsePaletteColors(f *testing.F) {
	f.Add("#000000,#ffffff")
	f.Add("")
	f.Add(",,,")
	f.Add("#abc")
	f.Add("#a50026, #313695 ,")

	f.Fuzz(func(t *testing.T, input string) {
		cfg := &Config{Palette: DefaultPalette, PaletteColors: input}
		p, err := cfg.ResolvePalette()
		if err == nil && len(p) == 0 {
			t.Fatalf("empty palette without error for %q", input)
		}
	})
}
