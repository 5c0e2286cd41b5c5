package filmfx

import (
	"fmt"
	"math"

	"github.com/samber/lo"
)

// MaxIntensity is the upper end of the intensity scale.
const MaxIntensity = 100

// grainDivisor keeps grain speckles sparse: at full intensity the grain
// layer alpha is the noise value divided by 5000.
const grainDivisor = 5000

// ScaleIntensity maps an intensity in [0, 100] to (v/100)^2. Values outside
// the range are clamped first. NaN is rejected with ErrInvalidInput.
func ScaleIntensity(v float64) (float64, error) {
	if math.IsNaN(v) {
		return 0, fmt.Errorf("%w: intensity is NaN", ErrInvalidInput)
	}
	f := lo.Clamp(v, 0, MaxIntensity) / MaxIntensity
	return f * f, nil
}

// GrainCoefficient returns the alpha coefficient of the grain layer for a
// grain intensity.
func GrainCoefficient(grain float64) (float64, error) {
	s, err := ScaleIntensity(grain)
	if err != nil {
		return 0, err
	}
	return s / grainDivisor, nil
}
