package radar

// Status describes the validity of a range estimate.
type Status string

const (
	// StatusOK marks an in-band, unambiguous estimate.
	StatusOK Status = "ok"
	// StatusNoTarget marks a degenerate zero-energy spectrum where the peak
	// search is ill-defined.
	StatusNoTarget Status = "no_target"
	// StatusAliased marks an estimate whose true beat frequency exceeds the
	// IF band; the reported range is wrapped and unreliable.
	StatusAliased Status = "aliased"
)

// Estimate is the output of the range processor.
type Estimate struct {
	RangeM   float64 // estimated target range, m
	BeatFreq float64 // dominant IF beat frequency, Hz
	Bin      int     // FFT bin of the dominant tone
	Status   Status
}

// Detected reports whether the estimate carries a usable target range.
// An aliased estimate counts as detected; its range is wrapped, not absent.
func (e Estimate) Detected() bool { return e.Status != StatusNoTarget }
