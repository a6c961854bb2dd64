package sample

import (
	"context"
	"fmt"

	"github.com/gocrane/crane/pkg/common"
)

var _ Source = &TimeSeriesSource{}

// TimeSeriesSource flattens the sample values of one or more time series,
// series by series, keeping the timestamp order inside each series.
type TimeSeriesSource struct {
	Series []*common.TimeSeries
}

func NewTimeSeriesSource(series ...*common.TimeSeries) *TimeSeriesSource {
	return &TimeSeriesSource{Series: series}
}

func (t *TimeSeriesSource) Load(_ context.Context) (Sample, error) {
	return TimeSeries2Sample(t.Series...), nil
}

func (t *TimeSeriesSource) String() string {
	return fmt.Sprintf("timeseries(%d)", len(t.Series))
}

// TimeSeries2Sample collects the values of the given series. Nil series are skipped.
func TimeSeries2Sample(series ...*common.TimeSeries) Sample {
	data := Sample{}
	for _, ts := range series {
		if ts == nil {
			continue
		}
		for _, s := range ts.Samples {
			data = append(data, s.Value)
		}
	}
	return data
}
