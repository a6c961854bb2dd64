package estimator

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/stat"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func randomSample(seed int64, n int) []float64 {
	r := rand.New(rand.NewSource(seed))
	data := make([]float64, n)
	for i := range data {
		data[i] = r.NormFloat64()*10 + 3
	}
	return data
}

func mustCalculate(t *testing.T, e Estimator, err error) float64 {
	t.Helper()
	if err != nil {
		t.Fatalf("construct %T: %v", e, err)
	}
	got, err := e.Calculate()
	if err != nil {
		t.Fatalf("%s Calculate() error = %v", e.Kind(), err)
	}
	return got
}

func TestMean(t *testing.T) {
	tests := []struct {
		name  string
		input []float64
		want  float64
	}{
		{"single", []float64{5}, 5},
		{"integers", []float64{1, 2, 3}, 2},
		{"mixed", []float64{5, 100, 20}, 41.666666666666664},
		{"negative", []float64{-4, 4, -2, 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMean(tt.input)
			if got := mustCalculate(t, m, err); !almostEqual(got, tt.want) {
				t.Errorf("Mean(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMeanMatchesReference(t *testing.T) {
	data := randomSample(1, 1000)
	var sum float64
	for _, x := range data {
		sum += x
	}
	m, err := NewMean(data)
	got := mustCalculate(t, m, err)
	if !almostEqual(got, sum/float64(len(data))) {
		t.Errorf("Mean() = %v, want %v", got, sum/float64(len(data)))
	}
	if want := stat.Mean(data, nil); !almostEqual(got, want) {
		t.Errorf("Mean() = %v, gonum %v", got, want)
	}
}

func TestMeanEmpty(t *testing.T) {
	if _, err := NewMean(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("NewMean(nil) error = %v, want ErrInvalidInput", err)
	}
	if _, err := (&Mean{}).Calculate(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Mean{}.Calculate() error = %v, want ErrInvalidInput", err)
	}
}

func TestSampleVariance(t *testing.T) {
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	v, err := NewSampleVariance(data)
	got := mustCalculate(t, v, err)
	if want := 32.0 / 7; !almostEqual(got, want) {
		t.Errorf("SampleVariance(%v) = %v, want %v", data, got, want)
	}
	if want := stat.Variance(data, nil); !almostEqual(got, want) {
		t.Errorf("SampleVariance(%v) = %v, gonum %v", data, got, want)
	}
}

func TestSampleVarianceTranslationAndScale(t *testing.T) {
	data := randomSample(2, 200)
	v, err := NewSampleVariance(data)
	base := mustCalculate(t, v, err)

	for _, c := range []float64{-50, 0.5, 3, 1000} {
		shifted := make([]float64, len(data))
		scaled := make([]float64, len(data))
		for i, x := range data {
			shifted[i] = x + c
			scaled[i] = x * c
		}
		sv, err := NewSampleVariance(shifted)
		if got := mustCalculate(t, sv, err); math.Abs(got-base) > 1e-6*base {
			t.Errorf("variance after shift by %v = %v, want %v", c, got, base)
		}
		cv, err := NewSampleVariance(scaled)
		if got, want := mustCalculate(t, cv, err), base*c*c; !almostEqual(got, want) {
			t.Errorf("variance after scale by %v = %v, want %v", c, got, want)
		}
	}
}

func TestQuantile(t *testing.T) {
	hundred := make([]float64, 100)
	for i := range hundred {
		hundred[i] = float64(i + 1)
	}
	tests := []struct {
		name  string
		input []float64
		alpha float64
		want  float64
	}{
		{"zero is minimum", []float64{5, 1, 2, 3, 4}, 0, 1},
		{"median of odd sample", []float64{5, 1, 3, 2, 4}, 0.5, 3},
		{"upper median of even sample", []float64{4, 1, 3, 2}, 0.5, 3},
		{"nearest rank truncates", []float64{10, 20, 30}, 0.6, 20},
		{"near the top", hundred, 0.99, 100},
		{"single value", []float64{7}, 0.9, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := NewQuantile(tt.input, tt.alpha)
			if got := mustCalculate(t, q, err); got != tt.want {
				t.Errorf("Quantile(%v, %v) = %v, want %v", tt.input, tt.alpha, got, tt.want)
			}
		})
	}
}

func TestQuantileInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input []float64
		alpha float64
	}{
		{"alpha one overflows the rank", []float64{1, 2, 3}, 1},
		{"negative alpha", []float64{1, 2, 3}, -0.1},
		{"alpha above one", []float64{1, 2, 3}, 1.5},
		{"nan alpha", []float64{1, 2, 3}, math.NaN()},
		{"empty sample", nil, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewQuantile(tt.input, tt.alpha); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("NewQuantile(%v, %v) error = %v, want ErrInvalidInput", tt.input, tt.alpha, err)
			}
		})
	}
}

func TestQuantileDoesNotReorderInput(t *testing.T) {
	input := []float64{3, 1, 2}
	q, err := NewQuantile(input, 0)
	first := mustCalculate(t, q, err)
	second := mustCalculate(t, q, nil)
	if first != second {
		t.Errorf("repeated Calculate() = %v then %v", first, second)
	}
	if want := []float64{3, 1, 2}; !reflect.DeepEqual(input, want) {
		t.Errorf("input modified to %v", input)
	}
	if want := []float64{3, 1, 2}; !reflect.DeepEqual([]float64(q.sample), want) {
		t.Errorf("held sample reordered to %v", q.sample)
	}
}

func TestConstructorCopiesSample(t *testing.T) {
	input := []float64{1, 2, 3}
	m, err := NewMean(input)
	if err != nil {
		t.Fatal(err)
	}
	input[0] = 100
	if got := mustCalculate(t, m, nil); got != 2 {
		t.Errorf("Mean() = %v after caller mutation, want 2", got)
	}
}
