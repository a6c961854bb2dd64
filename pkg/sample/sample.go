package sample

import (
	"context"

	"github.com/montanaflynn/stats"
)

// Sample is an ordered sequence of real valued observations.
type Sample = stats.Float64Data

// Source is a provider of a sample, such as a text file, an in-memory slice or a metric store.
type Source interface {
	// Load returns the sample values in source order. Implementations never
	// return a slice shared with the caller or with another Load call.
	Load(ctx context.Context) (Sample, error)
	// String describes the source for logs and reports.
	String() string
}

var _ Source = SliceSource(nil)

// SliceSource serves an already built sample.
type SliceSource []float64

func (s SliceSource) Load(_ context.Context) (Sample, error) {
	return Copy(s), nil
}

func (s SliceSource) String() string {
	return "memory"
}

// Copy returns a private copy of values. A nil input gives an empty, non nil sample.
func Copy(values []float64) Sample {
	cp := make(Sample, len(values))
	copy(cp, values)
	return cp
}
