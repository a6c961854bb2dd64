package estimator

import (
	"context"
	"errors"
	"testing"

	"github.com/IlyaVysokikh/MathStatLib/pkg/sample"
	"github.com/IlyaVysokikh/MathStatLib/pkg/spec"
)

func TestEvaluate(t *testing.T) {
	m, err := NewMean([]float64{1, 2, 3, 6})
	if err != nil {
		t.Fatal(err)
	}
	stat := Evaluate(m)
	if stat.Err != nil || stat.Value == nil || *stat.Value != 3 {
		t.Fatalf("Evaluate() = %+v, want value 3", stat)
	}
	if stat.Kind != string(KindMean) || stat.Size != 4 {
		t.Errorf("Evaluate() = %+v, want kind mean size 4", stat)
	}

	stat = Evaluate(&KurtorisFactor{base: newBase([]float64{1, 1})})
	if stat.Value != nil || !errors.Is(stat.Err, ErrInvalidInput) || stat.Error == "" {
		t.Errorf("Evaluate(zero variance) = %+v, want ErrInvalidInput", stat)
	}
}

func TestDescribe(t *testing.T) {
	src := sample.SliceSource{1, 2, 3, 4, 5}
	results, err := Describe(context.Background(), src, []Kind{KindMean, KindQuantile, KindCentralMoment, "median"}, defaultParams)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Fatalf("Describe() returned %d statistics, want 4", len(results))
	}

	wants := []float64{3, 3, 0}
	for i, want := range wants {
		stat := results[i]
		if stat.Err != nil || stat.Value == nil {
			t.Errorf("%s: unexpected error %v", stat.Name(), stat.Err)
			continue
		}
		if !almostEqual(*stat.Value, want) {
			t.Errorf("%s = %v, want %v", stat.Name(), *stat.Value, want)
		}
		if stat.Source != "memory" || stat.Size != 5 {
			t.Errorf("%s source %q size %d", stat.Name(), stat.Source, stat.Size)
		}
	}
	if last := results[3]; !errors.Is(last.Err, ErrUnknownKind) {
		t.Errorf("unknown kind statistic = %+v, want ErrUnknownKind", last)
	}
}

func TestRunLabels(t *testing.T) {
	requests := []Request{
		{Name: "p90", Kind: KindQuantile, Params: spec.Params{spec.ParamAlpha: 0.9}},
		{Name: "typo", Kind: "median"},
		{Kind: KindMean},
	}
	results, err := Run(context.Background(), sample.SliceSource{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, requests)
	if err != nil {
		t.Fatal(err)
	}
	wantNames := []string{"p90", "typo", "mean"}
	for i, stat := range results {
		if stat.Name() != wantNames[i] {
			t.Errorf("results[%d].Name() = %q, want %q", i, stat.Name(), wantNames[i])
		}
	}
	if results[0].Value == nil || *results[0].Value != 10 {
		t.Errorf("p90 = %+v, want 10", results[0])
	}
}

func TestDescribeAllKinds(t *testing.T) {
	results, err := Describe(context.Background(), sample.SliceSource{4, 8, 15, 16, 23, 42}, nil, defaultParams)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(Kinds()) {
		t.Fatalf("Describe() returned %d statistics, want %d", len(results), len(Kinds()))
	}
	for _, stat := range results {
		if stat.Err != nil {
			t.Errorf("%s: %v", stat.Name(), stat.Err)
		}
	}
}

func TestDescribeSourceError(t *testing.T) {
	_, err := Describe(context.Background(), sample.NewFileSource(t.TempDir()+"/missing"), nil, defaultParams)
	if !errors.Is(err, sample.ErrIO) {
		t.Errorf("Describe() error = %v, want sample.ErrIO", err)
	}
}
