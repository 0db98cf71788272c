// Package sim composes the FMCW pipeline stages into pulse simulations:
// free-space propagation, the receiver front end, and the full
// chirp-to-range-estimate chain.
package sim

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/rjboer/GoFMCW/internal/antenna"
	"github.com/rjboer/GoFMCW/internal/radar"
)

// Echo describes the channel applied to one propagated pulse.
type Echo struct {
	Delay      float64 // round-trip delay, s
	Doppler    float64 // two-way Doppler shift, Hz
	TwoWayGain float64 // antenna power gain product g_tx*g_rx, linear
	Amplitude  float64 // applied amplitude factor incl. 1/R^2 path loss
	Aliased    bool    // delay reaches the next pulse trigger
}

// Propagate produces the echo of the transmitted waveform from a point
// target: delayed by the round trip, scaled by the two-way antenna gain and
// monostatic 1/R^4 path loss, and rotated by the Doppler phase ramp. The
// fractional-sample delay is realized by linear interpolation with zero fill
// before the echo arrives.
//
// Echo.Aliased is set when the delay reaches the pulse repetition interval;
// the single-pulse delay model is invalid there and the caller must surface
// the condition.
func Propagate(tx []complex128, tgt radar.Target, pat *antenna.Pattern, cfg radar.Config) ([]complex128, Echo, error) {
	r := tgt.Range()
	if r <= 0 {
		return nil, Echo{}, fmt.Errorf("propagate: target range %g m: %w", r, radar.ErrConfig)
	}

	gain := pat.GainAt(tgt.Azimuth(), tgt.Elevation())
	echo := Echo{
		Delay:      2 * r / radar.SpeedOfLight,
		Doppler:    tgt.Doppler(cfg.StartFreq),
		TwoWayGain: gain * gain,
	}
	echo.Aliased = echo.Delay >= cfg.PulseTime
	echo.Amplitude = math.Sqrt(echo.TwoWayGain) / (r * r)

	out := make([]complex128, len(tx))
	if echo.Amplitude == 0 {
		return out, echo, nil
	}

	delaySamples := echo.Delay * cfg.SampleRate
	whole := int(math.Floor(delaySamples))
	frac := delaySamples - float64(whole)
	amp := complex(echo.Amplitude, 0)

	for i := range out {
		j := i - whole
		var v complex128
		if j >= 1 {
			v = (1-complex(frac, 0))*tx[j] + complex(frac, 0)*tx[j-1]
		} else if j == 0 {
			v = (1 - complex(frac, 0)) * tx[0]
		}
		if v == 0 {
			continue
		}
		if echo.Doppler != 0 {
			t := float64(i) / cfg.SampleRate
			v *= cmplx.Exp(complex(0, 2*math.Pi*echo.Doppler*t))
		}
		out[i] = v * amp
	}
	return out, echo, nil
}
