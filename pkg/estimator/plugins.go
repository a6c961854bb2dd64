package estimator

import (
	"context"
	"fmt"
	"math"
	"sync"

	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/klog/v2"

	"github.com/IlyaVysokikh/MathStatLib/pkg/log"
	"github.com/IlyaVysokikh/MathStatLib/pkg/sample"
	"github.com/IlyaVysokikh/MathStatLib/pkg/spec"
)

// Factory builds an estimator of one kind over data. Parameters the kind does
// not use are ignored.
type Factory func(data []float64, params spec.Params) (Estimator, error)

// All registered estimator kinds.
var (
	factoriesMutex sync.Mutex
	factories      = make(map[Kind]Factory)
)

func init() {
	Register(KindMean, func(data []float64, _ spec.Params) (Estimator, error) {
		return build(NewMean(data))
	})
	Register(KindSampleVariance, func(data []float64, _ spec.Params) (Estimator, error) {
		return build(NewSampleVariance(data))
	})
	Register(KindGiniDifference, func(data []float64, _ spec.Params) (Estimator, error) {
		return build(NewGiniDifference(data))
	})
	Register(KindCentralMoment, func(data []float64, params spec.Params) (Estimator, error) {
		k, err := intParam(params, spec.ParamK)
		if err != nil {
			return nil, err
		}
		return build(NewCentralMoment(data, k))
	})
	Register(KindQuantile, func(data []float64, params spec.Params) (Estimator, error) {
		alpha, ok := params[spec.ParamAlpha]
		if !ok {
			return nil, fmt.Errorf("%w: missing parameter %s", ErrInvalidInput, spec.ParamAlpha)
		}
		return build(NewQuantile(data, alpha))
	})
	Register(KindAssymetry, func(data []float64, _ spec.Params) (Estimator, error) {
		return build(NewAssymetryFactor(data))
	})
	Register(KindKurtoris, func(data []float64, _ spec.Params) (Estimator, error) {
		return build(NewKurtorisFactor(data))
	})
	Register(KindHodgesLehmann, func(data []float64, _ spec.Params) (Estimator, error) {
		return build(NewHodgesLehmann(data))
	})
}

// Register registers an estimator Factory by kind. This is expected to happen
// during app startup.
func Register(kind Kind, factory Factory) {
	factoriesMutex.Lock()
	defer factoriesMutex.Unlock()
	if _, found := factories[kind]; found {
		klog.Fatalf("estimator %q was registered twice", kind)
	}
	log.Logger().V(5).Info("Registered estimator", "kind", kind)
	factories[kind] = factory
}

// Kinds returns the registered kinds in lexical order.
func Kinds() []Kind {
	factoriesMutex.Lock()
	defer factoriesMutex.Unlock()
	names := sets.NewString()
	for kind := range factories {
		names.Insert(string(kind))
	}
	var kinds []Kind
	for _, name := range names.List() {
		kinds = append(kinds, Kind(name))
	}
	return kinds
}

// New creates an estimator of the named kind over a copy of data.
func New(kind Kind, data []float64, params spec.Params) (Estimator, error) {
	factoriesMutex.Lock()
	f, found := factories[kind]
	factoriesMutex.Unlock()
	if !found {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
	return f(data, params)
}

// FromSource loads the sample from src and creates an estimator over it.
func FromSource(ctx context.Context, kind Kind, src sample.Source, params spec.Params) (Estimator, error) {
	data, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return New(kind, data, params)
}

// FromFile creates an estimator over the numbers read from the text file at path.
func FromFile(kind Kind, path string, params spec.Params) (Estimator, error) {
	return FromSource(context.Background(), kind, sample.NewFileSource(path), params)
}

// build drops a typed nil estimator so a failed factory returns a nil interface.
func build(e Estimator, err error) (Estimator, error) {
	if err != nil {
		return nil, err
	}
	return e, nil
}

func intParam(params spec.Params, name string) (int, error) {
	v, ok := params[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing parameter %s", ErrInvalidInput, name)
	}
	if v != math.Trunc(v) || math.IsInf(v, 0) || v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("%w: parameter %s=%v is not an integer", ErrInvalidInput, name, v)
	}
	return int(v), nil
}
