package sample

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gocrane/crane/pkg/common"
	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
	"k8s.io/klog/v2"
)

// PromConfig represents the config of prometheus
type PromConfig struct {
	Address            string
	Timeout            time.Duration
	KeepAlive          time.Duration
	InsecureSkipVerify bool
	Auth               ClientAuth
}

// ClientAuth holds the HTTP client identity info.
type ClientAuth struct {
	Username    string
	BearerToken string
	Password    string
}

// Apply applies the authentication identity info to the HTTP request headers
func (auth *ClientAuth) Apply(req *http.Request) {
	if auth == nil {
		return
	}

	if auth.BearerToken != "" {
		token := "Bearer " + auth.BearerToken
		req.Header.Add("Authorization", token)
	}

	if auth.Username != "" {
		req.SetBasicAuth(auth.Username, auth.Password)
	}
}

type authRoundTripper struct {
	auth ClientAuth
	next http.RoundTripper
}

func (a *authRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	a.auth.Apply(req)
	return a.next.RoundTrip(req)
}

// NewPrometheusAPI builds a prometheus http api client from config.
func NewPrometheusAPI(config *PromConfig) (v1.API, error) {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   config.Timeout,
			KeepAlive: config.KeepAlive,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: config.InsecureSkipVerify},
	}
	client, err := api.NewClient(api.Config{
		Address:      config.Address,
		RoundTripper: &authRoundTripper{auth: config.Auth, next: transport},
	})
	if err != nil {
		return nil, err
	}
	return v1.NewAPI(client), nil
}

var _ Source = &PromSource{}

// PromSource loads a sample from the result of a PromQL range query.
type PromSource struct {
	api    v1.API
	config *PromConfig

	Query string
	Start time.Time
	End   time.Time
	Step  time.Duration
}

// NewPromSource returns a source querying the last rangeLength of data up to now.
func NewPromSource(config *PromConfig, query string, rangeLength, step time.Duration) (*PromSource, error) {
	promAPI, err := NewPrometheusAPI(config)
	if err != nil {
		return nil, err
	}
	end := time.Now().Truncate(time.Minute)
	return &PromSource{
		api:    promAPI,
		config: config,
		Query:  query,
		Start:  end.Add(-rangeLength),
		End:    end,
		Step:   step,
	}, nil
}

func (p *PromSource) Load(ctx context.Context) (Sample, error) {
	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}
	klog.V(6).Infof("QueryRange %q, start: %v, end: %v, step: %v", p.Query, p.Start, p.End, p.Step)
	value, warnings, err := p.api.QueryRange(ctx, p.Query, v1.Range{Start: p.Start, End: p.End, Step: p.Step})
	if err != nil {
		return nil, &IOError{Op: "query", Path: p.config.Address, Err: err}
	}
	if len(warnings) > 0 {
		klog.Warningf("QueryRange %q returned warnings: %v", p.Query, warnings)
	}
	series, err := Matrix2TimeSeries(value)
	if err != nil {
		return nil, &IOError{Op: "query", Path: p.config.Address, Err: err}
	}
	return TimeSeries2Sample(series...), nil
}

func (p *PromSource) String() string {
	return fmt.Sprintf("prometheus(%s)", p.Query)
}

// Matrix2TimeSeries converts a range query result into time series.
func Matrix2TimeSeries(value model.Value) ([]*common.TimeSeries, error) {
	matrix, ok := value.(model.Matrix)
	if !ok {
		return nil, fmt.Errorf("unexpected query result type %T", value)
	}
	var results []*common.TimeSeries
	for _, stream := range matrix {
		ts := common.NewTimeSeries()
		for name, v := range stream.Metric {
			ts.AppendLabel(string(name), string(v))
		}
		for _, pair := range stream.Values {
			ts.AppendSample(int64(pair.Timestamp)/1000, float64(pair.Value))
		}
		results = append(results, ts)
	}
	return results, nil
}
