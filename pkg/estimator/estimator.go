package estimator

import (
	"errors"
	"fmt"

	"github.com/IlyaVysokikh/MathStatLib/pkg/sample"
	"github.com/IlyaVysokikh/MathStatLib/pkg/spec"
)

// Kind names an estimator variant.
type Kind string

const (
	KindMean           Kind = "mean"
	KindSampleVariance Kind = "variance"
	KindGiniDifference Kind = "gini"
	KindCentralMoment  Kind = "moment"
	KindQuantile       Kind = "quantile"
	KindAssymetry      Kind = "skewness"
	KindKurtoris       Kind = "kurtosis"
	KindHodgesLehmann  Kind = "hodges-lehmann"
)

var (
	// ErrInvalidInput is returned when the sample is too small for the statistic
	// or a parameter is out of range.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownKind is returned by the factory for kinds nobody registered.
	ErrUnknownKind = errors.New("unknown estimator kind")
)

// Estimator computes one scalar statistic over the sample it owns.
// Calculate is a pure function of the sample and parameters, calling it
// repeatedly yields the same result.
type Estimator interface {
	Calculate() (float64, error)
	Kind() Kind
	// Size is the number of observations in the owned sample.
	Size() int
	// Params returns the numeric parameters of the estimator, nil if it has none.
	Params() spec.Params
}

// base holds the private sample copy every estimator works on.
type base struct {
	sample sample.Sample
}

func newBase(data []float64) base {
	return base{sample: sample.Copy(data)}
}

func (b *base) Size() int {
	return len(b.sample)
}

func (b *base) Params() spec.Params {
	return nil
}

func requireSize(kind Kind, n, min int) error {
	if n < min {
		return fmt.Errorf("%w: %s needs at least %d values, got %d", ErrInvalidInput, kind, min, n)
	}
	return nil
}
