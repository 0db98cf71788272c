package telemetry

import (
	"github.com/rjboer/GoFMCW/internal/logging"
)

// StdoutReporter prints pulse results through the structured logger.
type StdoutReporter struct {
	logger logging.Logger
}

// NewStdoutReporter builds a stdout reporter with the provided logger.
func NewStdoutReporter(logger logging.Logger) StdoutReporter {
	if logger == nil {
		logger = logging.Default()
	}
	return StdoutReporter{logger: logger}
}

func (r StdoutReporter) Report(sample Sample) {
	fields := []logging.Field{
		{Key: "subsystem", Value: "telemetry"},
		{Key: "pulse", Value: sample.PulseIndex},
		{Key: "status", Value: sample.Status},
	}
	if sample.Status != "no_target" {
		fields = append(fields,
			logging.Field{Key: "range_m", Value: sample.RangeM},
			logging.Field{Key: "beat_hz", Value: sample.BeatFreqHz},
		)
	}
	for _, warning := range sample.Warnings {
		fields = append(fields, logging.Field{Key: "warning", Value: warning})
	}
	r.logger.Info("range estimate", fields...)
}
