package config

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"gopkg.in/gcfg.v1"

	"github.com/IlyaVysokikh/MathStatLib/pkg/spec"
)

// File is the gcfg file read by mathstat --config, for example:
//
//	[sample]
//	source = prom
//
//	[prometheus]
//	address = http://localhost:9090
//	query = rate(http_requests_total[5m])
//	range = 24h
//	step = 5m
//
//	[output]
//	mode = csv
//	path = /tmp
//
//	[estimator "p95"]
//	kind = quantile
//	alpha = 0.95
type File struct {
	Sample     SampleSection
	Prometheus PrometheusSection
	Output     OutputSection
	Estimator  map[string]*EstimatorSection
}

type SampleSection struct {
	// Source is file or prom.
	Source string
	Path   string
}

type PrometheusSection struct {
	Address  string
	Query    string
	Range    string
	Step     string
	Timeout  string
	Username string
	Password string
	Token    string
	Insecure bool
}

type OutputSection struct {
	Mode      string
	Path      string
	Precision int
	Textfile  string
}

type EstimatorSection struct {
	Kind string
	// K and Alpha are kept as text so that an unset value can be told apart from zero.
	K     string
	Alpha string
}

// Params returns the estimator parameters, using the defaults for values the
// section does not set.
func (e *EstimatorSection) Params(defaultK int, defaultAlpha float64) (spec.Params, error) {
	params := spec.Params{spec.ParamK: float64(defaultK), spec.ParamAlpha: defaultAlpha}
	if e.K != "" {
		k, err := strconv.Atoi(e.K)
		if err != nil {
			return nil, fmt.Errorf("estimator %s: invalid k %q: %v", e.Kind, e.K, err)
		}
		params[spec.ParamK] = float64(k)
	}
	if e.Alpha != "" {
		alpha, err := strconv.ParseFloat(e.Alpha, 64)
		if err != nil {
			return nil, fmt.Errorf("estimator %s: invalid alpha %q: %v", e.Kind, e.Alpha, err)
		}
		params[spec.ParamAlpha] = alpha
	}
	return params, nil
}

// NamedEstimator is an estimator section together with its subsection name.
type NamedEstimator struct {
	Name string
	*EstimatorSection
}

// Read parses a gcfg document. Warnings for unknown variables are not fatal.
func Read(r io.Reader) (*File, error) {
	cfg := &File{}
	if err := gcfg.FatalOnly(gcfg.ReadInto(cfg, r)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadFile parses the gcfg file at path.
func ReadFile(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open configuration %s: %v", path, err)
	}
	defer file.Close()
	return Read(file)
}

// Estimators returns the estimator sections ordered by name. A section without
// a kind uses its name as the kind.
func (f *File) Estimators() []NamedEstimator {
	names := make([]string, 0, len(f.Estimator))
	for name := range f.Estimator {
		names = append(names, name)
	}
	sort.Strings(names)

	var result []NamedEstimator
	for _, name := range names {
		section := f.Estimator[name]
		if section == nil {
			section = &EstimatorSection{}
		}
		if section.Kind == "" {
			section.Kind = name
		}
		result = append(result, NamedEstimator{Name: name, EstimatorSection: section})
	}
	return result
}

// Duration parses an optional duration value, returning def when empty.
func Duration(value string, def time.Duration) (time.Duration, error) {
	if value == "" {
		return def, nil
	}
	return time.ParseDuration(value)
}
