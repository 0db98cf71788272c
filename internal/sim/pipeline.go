package sim

import (
	"fmt"

	"github.com/rjboer/GoFMCW/internal/dsp"
	"github.com/rjboer/GoFMCW/internal/logging"
	"github.com/rjboer/GoFMCW/internal/radar"
)

// ProcessorConfig carries the IF-side parameters of the range processor.
type ProcessorConfig struct {
	ADCRate     float64 // target IF sample rate after decimation, Hz
	IFBandwidth float64 // unambiguous IF band limit, Hz
}

// Validate checks the processor parameters.
func (c ProcessorConfig) Validate() error {
	if c.ADCRate <= 0 {
		return fmt.Errorf("ADC rate %g Hz must be positive: %w", c.ADCRate, radar.ErrConfig)
	}
	if c.IFBandwidth <= 0 {
		return fmt.Errorf("IF bandwidth %g Hz must be positive: %w", c.IFBandwidth, radar.ErrConfig)
	}
	return nil
}

// Result carries every intermediate product of one processed pulse as plain
// arrays so external visualization can consume them independently.
type Result struct {
	Pulse        Pulse
	IF           []complex128
	DecimatedIF  []complex128
	IFSampleRate float64
	Spectrum     []float64 // FFT magnitudes of the decimated IF signal
	Freqs        []float64 // matching frequency axis, Hz
	Estimate     radar.Estimate
	Warnings     []string
}

// Pipeline runs the full chain for one pulse: simulate, dechirp against a
// freshly generated reference, decimate to the ADC rate, and estimate range.
type Pipeline struct {
	Transceiver Transceiver
	Processor   ProcessorConfig
	Logger      logging.Logger
}

// Run processes a single pulse against the target. Aliasing and no-target
// conditions are returned as states on the estimate, never as errors.
func (p Pipeline) Run(tgt radar.Target, pulseIndex int) (Result, error) {
	logger := p.Logger
	if logger == nil {
		logger = logging.Default()
	}
	cfg := p.Transceiver.Config
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if err := p.Processor.Validate(); err != nil {
		return Result{}, err
	}

	pulse, err := p.Transceiver.SimulatePulse(tgt, pulseIndex)
	if err != nil {
		return Result{}, err
	}

	// The mixer uses its own reference copy of the sweep, not the
	// transmitted buffer, mirroring a real dechirp receiver.
	ref, err := dsp.Chirp(cfg, float64(pulseIndex)*cfg.PulseTime)
	if err != nil {
		return Result{}, err
	}
	ifSignal, err := dsp.Dechirp(pulse.Received, ref)
	if err != nil {
		return Result{}, err
	}

	factor := dsp.DecimationFactor(cfg.SampleRate, p.Processor.ADCRate)
	decimated, err := dsp.Decimate(ifSignal, factor)
	if err != nil {
		return Result{}, err
	}
	ifRate := cfg.SampleRate / float64(factor)

	estimate, err := dsp.EstimateRange(decimated, ifRate, cfg.Slope())
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Pulse:        pulse,
		IF:           ifSignal,
		DecimatedIF:  decimated,
		IFSampleRate: ifRate,
		Estimate:     estimate,
	}
	_, res.Spectrum = dsp.Spectrum(decimated)
	res.Freqs = dsp.FreqAxis(len(decimated), ifRate)

	// Aliasing cannot be read off the wrapped spectrum; flag it from the
	// channel truth the propagation model reported.
	if pulse.Echo.Aliased {
		res.Estimate.Status = radar.StatusAliased
		res.warn(logger, fmt.Sprintf("round-trip delay %.3g s reaches the pulse repetition interval %.3g s",
			pulse.Echo.Delay, cfg.PulseTime))
	}
	if res.Estimate.Status == radar.StatusOK {
		if beat := cfg.BeatFrequency(pulse.Echo.Delay); beat > p.Processor.IFBandwidth {
			res.Estimate.Status = radar.StatusAliased
			res.warn(logger, fmt.Sprintf("beat frequency %.4g Hz exceeds the IF band limit %.4g Hz; range wraps at %.3g m",
				beat, p.Processor.IFBandwidth, cfg.MaxBeatRange(p.Processor.IFBandwidth)))
		}
	}

	logger.Info("pulse processed",
		logging.Field{Key: "pulse", Value: pulseIndex},
		logging.Field{Key: "range_m", Value: res.Estimate.RangeM},
		logging.Field{Key: "beat_hz", Value: res.Estimate.BeatFreq},
		logging.Field{Key: "status", Value: string(res.Estimate.Status)},
	)
	return res, nil
}

func (r *Result) warn(logger logging.Logger, msg string) {
	r.Warnings = append(r.Warnings, msg)
	logger.Warn(msg, logging.Field{Key: "pulse", Value: r.Pulse.Index})
}
