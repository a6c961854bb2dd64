package estimator

import (
	"fmt"
	"math"

	"github.com/IlyaVysokikh/MathStatLib/pkg/spec"
)

var (
	_ Estimator = &CentralMoment{}
	_ Estimator = &AssymetryFactor{}
	_ Estimator = &KurtorisFactor{}
)

// CentralMoment of order k is Σ(x - mean)^k / n. Order 2 is the biased
// population variance and differs from SampleVariance.
type CentralMoment struct {
	base
	k int
}

func NewCentralMoment(data []float64, k int) (*CentralMoment, error) {
	m := &CentralMoment{base: newBase(data), k: k}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *CentralMoment) Kind() Kind {
	return KindCentralMoment
}

func (m *CentralMoment) Params() spec.Params {
	return spec.Params{spec.ParamK: float64(m.k)}
}

func (m *CentralMoment) validate() error {
	if m.k < 1 {
		return fmt.Errorf("%w: moment order %d must be at least 1", ErrInvalidInput, m.k)
	}
	return requireSize(KindCentralMoment, len(m.sample), 1)
}

func (m *CentralMoment) Calculate() (float64, error) {
	if err := m.validate(); err != nil {
		return 0, err
	}
	mean, err := calculate(NewMean(m.sample))
	if err != nil {
		return 0, err
	}
	order := float64(m.k)
	var sum float64
	for _, x := range m.sample {
		sum += math.Pow(x-mean, order)
	}
	return sum / float64(len(m.sample)), nil
}

// standardized returns the central moment of order k together with the sample
// variance, rejecting samples whose variance is zero.
func standardized(kind Kind, data []float64, k int) (moment, variance float64, err error) {
	if err = requireSize(kind, len(data), 2); err != nil {
		return 0, 0, err
	}
	if moment, err = calculate(NewCentralMoment(data, k)); err != nil {
		return 0, 0, err
	}
	if variance, err = calculate(NewSampleVariance(data)); err != nil {
		return 0, 0, err
	}
	if variance == 0 {
		return 0, 0, fmt.Errorf("%w: %s is undefined for a sample with zero variance", ErrInvalidInput, kind)
	}
	return moment, variance, nil
}

// AssymetryFactor is the sample skewness m3 / s^3, where m3 is the third
// central moment and s² the unbiased sample variance.
type AssymetryFactor struct {
	base
}

func NewAssymetryFactor(data []float64) (*AssymetryFactor, error) {
	if err := requireSize(KindAssymetry, len(data), 2); err != nil {
		return nil, err
	}
	return &AssymetryFactor{base: newBase(data)}, nil
}

func (a *AssymetryFactor) Kind() Kind {
	return KindAssymetry
}

func (a *AssymetryFactor) Calculate() (float64, error) {
	moment, variance, err := standardized(KindAssymetry, a.sample, 3)
	if err != nil {
		return 0, err
	}
	// The exponent is the real 3/2. Computing it in integer arithmetic
	// truncates to 1 and returns m3 / s² instead of a skewness.
	return moment / math.Pow(variance, 1.5), nil
}

// KurtorisFactor is the excess kurtosis m4 / s^4 - 3.
type KurtorisFactor struct {
	base
}

func NewKurtorisFactor(data []float64) (*KurtorisFactor, error) {
	if err := requireSize(KindKurtoris, len(data), 2); err != nil {
		return nil, err
	}
	return &KurtorisFactor{base: newBase(data)}, nil
}

func (k *KurtorisFactor) Kind() Kind {
	return KindKurtoris
}

func (k *KurtorisFactor) Calculate() (float64, error) {
	moment, variance, err := standardized(KindKurtoris, k.sample, 4)
	if err != nil {
		return 0, err
	}
	return moment/math.Pow(variance, 2) - 3, nil
}
