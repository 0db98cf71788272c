package radar

import (
	"errors"
	"math"
	"testing"
)

func TestNewConfigValid(t *testing.T) {
	cfg, err := NewConfig(1e9, 5e9, 40e-6, 2e10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cfg.PRF(); math.Abs(got-25000) > 1e-6 {
		t.Fatalf("PRF: expected 25000 got %g", got)
	}
	if got := cfg.Slope(); math.Abs(got-1.25e14) > 1 {
		t.Fatalf("slope: expected 1.25e14 got %g", got)
	}
	if got := cfg.NumSamples(); got != 800000 {
		t.Fatalf("samples: expected 800000 got %d", got)
	}
}

func TestConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		f0   float64
		bw   float64
		pt   float64
		fs   float64
	}{
		{"negative start freq", -1, 5e9, 40e-6, 2e10},
		{"zero bandwidth", 1e9, 0, 40e-6, 2e10},
		{"negative pulse time", 1e9, 5e9, -1e-6, 2e10},
		{"sample rate at nyquist", 1e9, 5e9, 40e-6, 1e10},
		{"sample rate below nyquist", 1e9, 5e9, 40e-6, 5e9},
	}
	for _, c := range cases {
		if _, err := NewConfig(c.f0, c.bw, c.pt, c.fs); !errors.Is(err, ErrConfig) {
			t.Fatalf("%s: expected ErrConfig, got %v", c.name, err)
		}
	}
}

func TestRangeResolution(t *testing.T) {
	cfg := Config{StartFreq: 1e9, Bandwidth: 5e9, PulseTime: 40e-6, SampleRate: 2e10}
	got := cfg.RangeResolution()
	want := SpeedOfLight / 1e10
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("resolution: expected %g got %g", want, got)
	}
	if got < 0.029 || got > 0.031 {
		t.Fatalf("resolution for 5 GHz sweep should be about 3 cm, got %g m", got)
	}
}

func TestMaxBeatRange(t *testing.T) {
	cfg := Config{StartFreq: 1e9, Bandwidth: 5e9, PulseTime: 40e-6, SampleRate: 2e10}
	got := cfg.MaxBeatRange(15e6)
	want := 15e6 * SpeedOfLight / (2 * cfg.Slope())
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("max beat range: expected %g got %g", want, got)
	}
	if got < 17.9 || got > 18.1 {
		t.Fatalf("max beat range for 15 MHz IF should be about 18 m, got %g", got)
	}
}

func TestBeatFrequencyRoundTrip(t *testing.T) {
	cfg := Config{StartFreq: 1e9, Bandwidth: 5e9, PulseTime: 40e-6, SampleRate: 2e10}
	r := 7.5
	delay := 2 * r / SpeedOfLight
	beat := cfg.BeatFrequency(delay)
	back := beat * SpeedOfLight / (2 * cfg.Slope())
	if math.Abs(back-r) > 1e-9 {
		t.Fatalf("delay/beat round trip: expected %g m got %g m", r, back)
	}
}
