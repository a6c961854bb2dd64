package estimator

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"k8s.io/klog/v2"
	"k8s.io/utils/pointer"

	"github.com/IlyaVysokikh/MathStatLib/pkg/metrics"
	"github.com/IlyaVysokikh/MathStatLib/pkg/sample"
	"github.com/IlyaVysokikh/MathStatLib/pkg/spec"
)

// Evaluate calculates e and wraps the outcome into a statistic. The
// calculation is accounted in the process metrics.
func Evaluate(e Estimator) spec.Statistic {
	return evaluate(e, "")
}

func evaluate(e Estimator, label string) spec.Statistic {
	start := time.Now()
	value, err := e.Calculate()
	stat := spec.Statistic{
		Label:    label,
		Kind:     string(e.Kind()),
		Params:   e.Params(),
		Size:     e.Size(),
		Duration: time.Since(start),
	}
	if err != nil {
		stat.Err = err
		stat.Error = err.Error()
		klog.V(4).Infof("Calculate %s over %d values failed: %v", stat.Name(), stat.Size, err)
	} else {
		stat.Value = pointer.Float64(value)
		klog.V(4).Infof("Calculate %s over %d values: %v, took %v", stat.Name(), stat.Size, value, stat.Duration)
	}
	metrics.RecordCalculation(&stat)
	return stat
}

// Request names one estimator to evaluate and its parameters. Name, when
// set, labels the resulting statistic.
type Request struct {
	Name   string
	Kind   Kind
	Params spec.Params
}

// Describe evaluates every kind with the same params. Empty kinds means all
// registered kinds.
func Describe(ctx context.Context, src sample.Source, kinds []Kind, params spec.Params) ([]spec.Statistic, error) {
	if len(kinds) == 0 {
		kinds = Kinds()
	}
	requests := make([]Request, 0, len(kinds))
	for _, kind := range kinds {
		requests = append(requests, Request{Kind: kind, Params: params})
	}
	return Run(ctx, src, requests)
}

// Run loads the sample from src once and evaluates the requests over it, one
// after another, in order. A request that cannot be built over the sample
// yields a statistic carrying the construction error.
func Run(ctx context.Context, src sample.Source, requests []Request) ([]spec.Statistic, error) {
	data, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]spec.Statistic, 0, len(requests))
	for _, req := range requests {
		var stat spec.Statistic
		e, err := New(req.Kind, data, req.Params)
		if err != nil {
			stat = spec.Statistic{Label: req.Name, Kind: string(req.Kind), Size: len(data), Err: err, Error: err.Error()}
			klog.Errorf("Failed to build estimator %s over %s: %v", req.Kind, src, err)
			metrics.RecordCalculation(&stat)
		} else {
			stat = evaluate(e, req.Name)
		}
		stat.Source = src.String()
		results = append(results, stat)
	}

	if klog.V(7).Enabled() {
		data, _ := jsoniter.Marshal(results)
		klog.V(7).Infof("Run %s: %s", src, string(data))
	}
	return results, nil
}
