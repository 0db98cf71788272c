// Package antenna stores tabulated azimuth/elevation gain patterns and
// provides interpolated lookup for the propagation model. The same pattern
// is used on transmit and receive.
package antenna

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/rjboer/GoFMCW/internal/radar"
)

// Pattern is a two-dimensional gain table. Gains are tabulated in dB, with
// -Inf marking masked directions, alongside a matching phase grid in radians.
// Lookup converts to linear scale and interpolates bilinearly. The table is
// read-only after construction and safe for concurrent lookup.
type Pattern struct {
	azimuths   []float64 // degrees, strictly increasing
	elevations []float64 // degrees, strictly increasing
	gainDB     *mat.Dense
	phase      *mat.Dense
}

// New builds a pattern from angle vectors and a len(az) x len(el) dB gain
// grid. phase may be nil, in which case a zero phase grid is assumed.
func New(azimuths, elevations []float64, gainDB, phase *mat.Dense) (*Pattern, error) {
	if len(azimuths) < 2 || len(elevations) < 2 {
		return nil, fmt.Errorf("pattern needs at least 2 azimuth and 2 elevation samples: %w", radar.ErrConfig)
	}
	if !strictlyIncreasing(azimuths) || !strictlyIncreasing(elevations) {
		return nil, fmt.Errorf("pattern angles must be strictly increasing: %w", radar.ErrConfig)
	}
	if gainDB == nil {
		return nil, fmt.Errorf("pattern gain grid is nil: %w", radar.ErrConfig)
	}
	r, c := gainDB.Dims()
	if r != len(azimuths) || c != len(elevations) {
		return nil, fmt.Errorf("gain grid is %dx%d, want %dx%d: %w",
			r, c, len(azimuths), len(elevations), radar.ErrShape)
	}
	if phase == nil {
		phase = mat.NewDense(r, c, nil)
	} else if pr, pc := phase.Dims(); pr != r || pc != c {
		return nil, fmt.Errorf("phase grid is %dx%d, want %dx%d: %w",
			pr, pc, r, c, radar.ErrShape)
	}
	az := append([]float64(nil), azimuths...)
	el := append([]float64(nil), elevations...)
	return &Pattern{azimuths: az, elevations: el, gainDB: gainDB, phase: phase}, nil
}

// Isotropic returns a full-sphere pattern with uniform gain.
func Isotropic(gainDB float64) *Pattern {
	az := []float64{-180, 180}
	el := []float64{-90, 90}
	g := mat.NewDense(2, 2, []float64{gainDB, gainDB, gainDB, gainDB})
	p, err := New(az, el, g, nil)
	if err != nil {
		panic(err) // static table, cannot fail
	}
	return p
}

// Sector returns a pattern with uniform gain inside the given azimuth and
// elevation widths centered on boresight, masked at the far corners of the
// sphere. The bilinear lookup tapers the gain linearly between the sector
// edge and the mask.
func Sector(azWidthDeg, elWidthDeg, gainDB float64) (*Pattern, error) {
	if azWidthDeg <= 0 || azWidthDeg >= 360 {
		return nil, fmt.Errorf("sector azimuth width %g deg must be in (0, 360): %w", azWidthDeg, radar.ErrConfig)
	}
	if elWidthDeg <= 0 || elWidthDeg >= 180 {
		return nil, fmt.Errorf("sector elevation width %g deg must be in (0, 180): %w", elWidthDeg, radar.ErrConfig)
	}
	ha := azWidthDeg / 2
	he := elWidthDeg / 2
	inf := math.Inf(-1)
	az := []float64{-180, -ha, ha, 180}
	el := []float64{-90, -he, he, 90}
	g := mat.NewDense(4, 4, []float64{
		inf, inf, inf, inf,
		inf, gainDB, gainDB, inf,
		inf, gainDB, gainDB, inf,
		inf, inf, inf, inf,
	})
	return New(az, el, g, nil)
}

// Azimuths returns a copy of the tabulated azimuth angles in degrees.
func (p *Pattern) Azimuths() []float64 { return append([]float64(nil), p.azimuths...) }

// Elevations returns a copy of the tabulated elevation angles in degrees.
func (p *Pattern) Elevations() []float64 { return append([]float64(nil), p.elevations...) }

// GainAt returns the linear power gain toward (azDeg, elDeg). Azimuth wraps
// at +/-180 degrees, elevation clamps at +/-90. Directions outside the
// tabulated grid, and masked (-Inf dB) table regions, return 0.
func (p *Pattern) GainAt(azDeg, elDeg float64) float64 {
	az := wrapAzimuth(azDeg)
	el := clampElevation(elDeg)

	ai, at, ok := bracket(p.azimuths, az)
	if !ok {
		return 0
	}
	ei, et, ok := bracket(p.elevations, el)
	if !ok {
		return 0
	}

	g00 := dbToLinear(p.gainDB.At(ai, ei))
	g01 := dbToLinear(p.gainDB.At(ai, ei+1))
	g10 := dbToLinear(p.gainDB.At(ai+1, ei))
	g11 := dbToLinear(p.gainDB.At(ai+1, ei+1))

	lo := g00*(1-et) + g01*et
	hi := g10*(1-et) + g11*et
	return lo*(1-at) + hi*at
}

// PhaseAt returns the interpolated pattern phase in radians toward the given
// direction, or 0 outside the tabulated grid.
func (p *Pattern) PhaseAt(azDeg, elDeg float64) float64 {
	az := wrapAzimuth(azDeg)
	el := clampElevation(elDeg)

	ai, at, ok := bracket(p.azimuths, az)
	if !ok {
		return 0
	}
	ei, et, ok := bracket(p.elevations, el)
	if !ok {
		return 0
	}
	lo := p.phase.At(ai, ei)*(1-et) + p.phase.At(ai, ei+1)*et
	hi := p.phase.At(ai+1, ei)*(1-et) + p.phase.At(ai+1, ei+1)*et
	return lo*(1-at) + hi*at
}

// bracket locates x within the sorted grid and returns the lower index and
// the interpolation fraction toward the next sample.
func bracket(grid []float64, x float64) (int, float64, bool) {
	if x < grid[0] || x > grid[len(grid)-1] {
		return 0, 0, false
	}
	if x == grid[len(grid)-1] {
		return len(grid) - 2, 1, true
	}
	lo := 0
	hi := len(grid) - 1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if grid[mid] <= x {
			lo = mid
		} else {
			hi = mid
		}
	}
	t := (x - grid[lo]) / (grid[lo+1] - grid[lo])
	return lo, t, true
}

func dbToLinear(db float64) float64 {
	if math.IsInf(db, -1) {
		return 0
	}
	return math.Pow(10, db/10)
}

func wrapAzimuth(deg float64) float64 {
	w := math.Mod(deg+180, 360)
	if w < 0 {
		w += 360
	}
	return w - 180
}

func clampElevation(deg float64) float64 {
	if deg > 90 {
		return 90
	}
	if deg < -90 {
		return -90
	}
	return deg
}

func strictlyIncreasing(v []float64) bool {
	for i := 1; i < len(v); i++ {
		if v[i] <= v[i-1] {
			return false
		}
	}
	return true
}
