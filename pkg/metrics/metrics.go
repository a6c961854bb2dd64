package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"k8s.io/klog/v2"

	"github.com/IlyaVysokikh/MathStatLib/pkg/consts"
	"github.com/IlyaVysokikh/MathStatLib/pkg/spec"
)

var metricsInit sync.Once

var (
	calculationsCv    *prometheus.CounterVec
	calculationTimeHv *prometheus.HistogramVec
	lastValueGv       *prometheus.GaugeVec
	sampleSizeGv      *prometheus.GaugeVec
)

func init() {
	metricsInit.Do(func() {
		calculationsCv = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mathstat_calculations_total",
			Help: "mathstat_calculations_total number of estimator calculations by kind and result",
		}, []string{consts.LabelKind, consts.LabelResult})

		calculationTimeHv = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mathstat_calculation_duration_seconds",
			Help:    "mathstat_calculation_duration_seconds time spent in one estimator calculation",
			Buckets: prometheus.ExponentialBuckets(1e-6, 10, 8),
		}, []string{consts.LabelKind})

		lastValueGv = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mathstat_last_value",
			Help: "mathstat_last_value last successfully calculated statistic",
		}, []string{consts.LabelKind})

		sampleSizeGv = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mathstat_sample_size",
			Help: "mathstat_sample_size number of observations of the last evaluated sample",
		}, []string{consts.LabelKind})

		prometheus.MustRegister(calculationsCv, calculationTimeHv, lastValueGv, sampleSizeGv)
	})
}

// RecordCalculation accounts one evaluated statistic.
func RecordCalculation(stat *spec.Statistic) {
	name := stat.Name()
	result := consts.ResultSuccess
	if stat.Err != nil {
		result = consts.ResultError
	}
	calculationsCv.WithLabelValues(name, result).Inc()
	calculationTimeHv.WithLabelValues(name).Observe(stat.Duration.Seconds())
	sampleSizeGv.WithLabelValues(name).Set(float64(stat.Size))
	if stat.Value != nil {
		lastValueGv.WithLabelValues(name).Set(*stat.Value)
	} else if lastValueGv.DeleteLabelValues(name) {
		klog.V(3).Infof("Removing last value of %s after failed calculation", name)
	}
}

// WriteTextfile writes all registered metrics in the text exposition format,
// suitable for the node exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
