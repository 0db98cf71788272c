package dsp

import (
	"fmt"
	"math/cmplx"

	"github.com/rjboer/GoFMCW/internal/radar"
)

// Dechirp conjugate-mixes the received samples against the reference chirp,
// producing the IF beat signal. The received side carries the conjugate so
// that an up-sweep echo beats at +slope*delay on the [0, fs) FFT axis used
// by the range processor. Both operands must have the same length.
func Dechirp(received, reference []complex128) ([]complex128, error) {
	if len(received) != len(reference) {
		return nil, fmt.Errorf("dechirp: received %d samples, reference %d: %w",
			len(received), len(reference), radar.ErrShape)
	}
	out := make([]complex128, len(received))
	for i := range out {
		out[i] = cmplx.Conj(received[i]) * reference[i]
	}
	return out, nil
}
