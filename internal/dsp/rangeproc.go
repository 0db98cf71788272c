package dsp

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/rjboer/GoFMCW/internal/radar"
)

// EstimateRange locates the dominant tone in the decimated IF signal and
// converts it to a target range:
//
//	range = f_peak * c / (2 * slope)
//
// A zero-energy spectrum yields StatusNoTarget; the peak search has no
// meaningful answer there. Wrap-around of out-of-band beats cannot be seen
// in the spectrum itself, so aliasing is flagged by the caller, which knows
// the true propagation delay.
func EstimateRange(decimated []complex128, ifSampleRate, slope float64) (radar.Estimate, error) {
	if ifSampleRate <= 0 {
		return radar.Estimate{}, fmt.Errorf("estimate range: IF sample rate %g: %w", ifSampleRate, radar.ErrConfig)
	}
	if slope <= 0 {
		return radar.Estimate{}, fmt.Errorf("estimate range: slope %g: %w", slope, radar.ErrConfig)
	}
	if len(decimated) == 0 {
		return radar.Estimate{Status: radar.StatusNoTarget}, nil
	}

	_, mags := Spectrum(decimated)
	peak := floats.MaxIdx(mags)
	if mags[peak] == 0 {
		return radar.Estimate{Status: radar.StatusNoTarget}, nil
	}

	freq := ifSampleRate / float64(len(decimated)) * float64(peak)
	return radar.Estimate{
		RangeM:   freq * radar.SpeedOfLight / (2 * slope),
		BeatFreq: freq,
		Bin:      peak,
		Status:   radar.StatusOK,
	}, nil
}
