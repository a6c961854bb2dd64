package spec

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Params holds the numeric parameters of an estimator, such as the moment
// order "k" or the quantile level "alpha".
type Params map[string]float64

const (
	ParamK     = "k"
	ParamAlpha = "alpha"
)

// String renders params in key order, e.g. "alpha=0.95,k=3".
func (p Params) String() string {
	if len(p) == 0 {
		return ""
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, p[k]))
	}
	return strings.Join(parts, ",")
}

// Statistic is the outcome of one estimator evaluation. Value is nil when Err is set.
type Statistic struct {
	// Label is a user given name, such as a config section name.
	Label    string        `json:"label,omitempty"`
	Kind     string        `json:"kind"`
	Params   Params        `json:"params,omitempty"`
	Source   string        `json:"source,omitempty"`
	Size     int           `json:"size"`
	Value    *float64      `json:"value,omitempty"`
	Err      error         `json:"-"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Name identifies the statistic in reports, e.g. "quantile(alpha=0.5)". A
// label other than the kind takes precedence.
func (s *Statistic) Name() string {
	if s.Label != "" && s.Label != s.Kind {
		return s.Label
	}
	if len(s.Params) == 0 {
		return s.Kind
	}
	return s.Kind + "(" + s.Params.String() + ")"
}
