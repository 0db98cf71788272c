package dsp

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/rjboer/GoFMCW/internal/radar"
)

// Chirp synthesizes one pulse of the transmitted linear FM sweep as complex
// samples at the RF rate. The instantaneous phase is
//
//	phi(t) = 2*pi*(f0*t + 0.5*slope*t^2)
//
// with t wrapped modulo the pulse time, so the sweep retriggers every pulse
// and startTime selects where inside the period sampling begins. The output
// is deterministic given the config and start time.
func Chirp(cfg radar.Config, startTime float64) ([]complex128, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("chirp: %w", err)
	}
	n := cfg.NumSamples()
	slope := cfg.Slope()
	out := make([]complex128, n)
	for i := range out {
		t := math.Mod(startTime+float64(i)/cfg.SampleRate, cfg.PulseTime)
		if t < 0 {
			t += cfg.PulseTime
		}
		phase := 2 * math.Pi * (cfg.StartFreq*t + 0.5*slope*t*t)
		out[i] = cmplx.Exp(complex(0, phase))
	}
	return out, nil
}
