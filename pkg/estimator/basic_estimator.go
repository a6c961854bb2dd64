package estimator

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/IlyaVysokikh/MathStatLib/pkg/sample"
	"github.com/IlyaVysokikh/MathStatLib/pkg/spec"
)

var (
	_ Estimator = &Mean{}
	_ Estimator = &SampleVariance{}
	_ Estimator = &Quantile{}
)

// Mean is the arithmetic mean of the sample.
type Mean struct {
	base
}

// NewMean returns a mean estimator over a copy of data. An empty sample is
// rejected with ErrInvalidInput instead of producing NaN.
func NewMean(data []float64) (*Mean, error) {
	if err := requireSize(KindMean, len(data), 1); err != nil {
		return nil, err
	}
	return &Mean{base: newBase(data)}, nil
}

func (m *Mean) Kind() Kind {
	return KindMean
}

func (m *Mean) Calculate() (float64, error) {
	if err := requireSize(KindMean, len(m.sample), 1); err != nil {
		return 0, err
	}
	sum, err := stats.Sum(m.sample)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return sum / float64(len(m.sample)), nil
}

// SampleVariance is the unbiased sample variance, Σ(x - mean)² / (n - 1).
type SampleVariance struct {
	base
}

func NewSampleVariance(data []float64) (*SampleVariance, error) {
	if err := requireSize(KindSampleVariance, len(data), 2); err != nil {
		return nil, err
	}
	return &SampleVariance{base: newBase(data)}, nil
}

func (v *SampleVariance) Kind() Kind {
	return KindSampleVariance
}

func (v *SampleVariance) Calculate() (float64, error) {
	if err := requireSize(KindSampleVariance, len(v.sample), 2); err != nil {
		return 0, err
	}
	mean, err := calculate(NewMean(v.sample))
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, x := range v.sample {
		d := x - mean
		sum += d * d
	}
	return sum / float64(len(v.sample)-1), nil
}

// Quantile is the nearest rank quantile: the element at index floor(alpha*n)
// of the ascending sorted sample, without interpolation.
type Quantile struct {
	base
	alpha float64
}

// NewQuantile validates alpha against [0, 1] and the sample size. An alpha
// whose rank reaches n (alpha == 1 for any sample) has no element and is
// rejected rather than clamped.
func NewQuantile(data []float64, alpha float64) (*Quantile, error) {
	q := &Quantile{base: newBase(data), alpha: alpha}
	if _, err := q.rank(); err != nil {
		return nil, err
	}
	return q, nil
}

func (q *Quantile) Kind() Kind {
	return KindQuantile
}

func (q *Quantile) Params() spec.Params {
	return spec.Params{spec.ParamAlpha: q.alpha}
}

func (q *Quantile) rank() (int, error) {
	if math.IsNaN(q.alpha) || q.alpha < 0 || q.alpha > 1 {
		return 0, fmt.Errorf("%w: quantile level %v outside [0, 1]", ErrInvalidInput, q.alpha)
	}
	n := len(q.sample)
	if err := requireSize(KindQuantile, n, 1); err != nil {
		return 0, err
	}
	idx := int(q.alpha * float64(n))
	if idx >= n {
		return 0, fmt.Errorf("%w: quantile level %v gives rank %d past the last of %d values", ErrInvalidInput, q.alpha, idx, n)
	}
	return idx, nil
}

func (q *Quantile) Calculate() (float64, error) {
	idx, err := q.rank()
	if err != nil {
		return 0, err
	}
	sorted := sample.Copy(q.sample)
	sort.Sort(sorted)
	return sorted[idx], nil
}

// calculate runs a freshly built helper estimator, used when one statistic is
// derived from another over the same sample.
func calculate(e Estimator, err error) (float64, error) {
	if err != nil {
		return 0, err
	}
	return e.Calculate()
}
