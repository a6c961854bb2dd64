package options

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/pflag"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/IlyaVysokikh/MathStatLib/pkg/config"
	"github.com/IlyaVysokikh/MathStatLib/pkg/consts"
	"github.com/IlyaVysokikh/MathStatLib/pkg/estimator"
	"github.com/IlyaVysokikh/MathStatLib/pkg/report"
	"github.com/IlyaVysokikh/MathStatLib/pkg/sample"
	"github.com/IlyaVysokikh/MathStatLib/pkg/spec"
)

// Options hold the command-line options about mathstat
type Options struct {
	// ConfigFile is an optional gcfg file, flags given explicitly take precedence over it.
	ConfigFile string
	// Source is where the sample comes from, file or prom.
	Source string
	// SamplePath is the sample file, - reads stdin.
	SamplePath string

	Estimators []string
	K          int
	Alpha      float64

	PromConfig      sample.PromConfig
	PromQuery       string
	PromRange       time.Duration
	PromStep        time.Duration
	Report          report.Config
	MetricsTextfile string

	// Requests are built by Complete from Estimators or the config file.
	Requests []estimator.Request
}

// NewOptions builds an empty options.
func NewOptions() *Options {
	return &Options{}
}

// Complete reads the config file, fills the values not given as flags and
// builds the estimator requests. fs may be nil, then every flag counts as unset.
func (o *Options) Complete(fs *pflag.FlagSet, args []string) error {
	if len(args) > 0 {
		o.SamplePath = args[0]
	}
	changed := func(name string) bool {
		return fs != nil && fs.Changed(name)
	}

	var file *config.File
	if o.ConfigFile != "" {
		var err error
		if file, err = config.ReadFile(o.ConfigFile); err != nil {
			return err
		}
		if err = o.applyFile(file, changed); err != nil {
			return err
		}
	}

	if o.SamplePath == "" {
		o.SamplePath = sample.StdinPath
	}
	if o.Report.Name == "" {
		o.Report.Name = consts.AppName
	}

	o.Requests = nil
	if file != nil && len(file.Estimator) > 0 && !changed("estimators") {
		for _, e := range file.Estimators() {
			params, err := e.Params(o.K, o.Alpha)
			if err != nil {
				return err
			}
			o.Requests = append(o.Requests, estimator.Request{Name: e.Name, Kind: estimator.Kind(e.Kind), Params: params})
		}
		return nil
	}

	kinds := o.Estimators
	if len(kinds) == 0 {
		for _, kind := range estimator.Kinds() {
			kinds = append(kinds, string(kind))
		}
	}
	for _, kind := range kinds {
		o.Requests = append(o.Requests, estimator.Request{
			Kind:   estimator.Kind(strings.TrimSpace(kind)),
			Params: spec.Params{spec.ParamK: float64(o.K), spec.ParamAlpha: o.Alpha},
		})
	}
	return nil
}

func (o *Options) applyFile(file *config.File, changed func(string) bool) error {
	setString := func(flag string, dst *string, value string) {
		if value != "" && !changed(flag) {
			*dst = value
		}
	}
	setDuration := func(flag string, dst *time.Duration, value string) error {
		if value == "" || changed(flag) {
			return nil
		}
		d, err := config.Duration(value, *dst)
		if err != nil {
			return fmt.Errorf("invalid %s %q in %s: %v", flag, value, o.ConfigFile, err)
		}
		*dst = d
		return nil
	}

	setString("source", &o.Source, file.Sample.Source)
	if file.Sample.Path != "" && o.SamplePath == "" {
		o.SamplePath = file.Sample.Path
	}

	setString("prometheus-address", &o.PromConfig.Address, file.Prometheus.Address)
	setString("prometheus-query", &o.PromQuery, file.Prometheus.Query)
	setString("prometheus-auth-username", &o.PromConfig.Auth.Username, file.Prometheus.Username)
	setString("prometheus-auth-password", &o.PromConfig.Auth.Password, file.Prometheus.Password)
	setString("prometheus-auth-bearertoken", &o.PromConfig.Auth.BearerToken, file.Prometheus.Token)
	if file.Prometheus.Insecure && !changed("prometheus-insecure-skip-verify") {
		o.PromConfig.InsecureSkipVerify = true
	}
	if err := setDuration("prometheus-range", &o.PromRange, file.Prometheus.Range); err != nil {
		return err
	}
	if err := setDuration("prometheus-step", &o.PromStep, file.Prometheus.Step); err != nil {
		return err
	}
	if err := setDuration("prometheus-timeout", &o.PromConfig.Timeout, file.Prometheus.Timeout); err != nil {
		return err
	}

	setString("output-mode", &o.Report.OutputMode, file.Output.Mode)
	setString("data-path", &o.Report.DataPath, file.Output.Path)
	setString("metrics-textfile", &o.MetricsTextfile, file.Output.Textfile)
	if file.Output.Precision > 0 && !changed("precision") {
		o.Report.Precision = file.Output.Precision
	}
	return nil
}

// Validate all required options.
func (o *Options) Validate() error {
	var errs []error

	switch o.Source {
	case consts.SourceFile:
	case consts.SourcePrometheus:
		if o.PromConfig.Address == "" {
			errs = append(errs, fmt.Errorf("must specify --prometheus-address for source %s", o.Source))
		}
		if o.PromQuery == "" {
			errs = append(errs, fmt.Errorf("must specify --prometheus-query for source %s", o.Source))
		}
		if o.PromRange <= 0 || o.PromStep <= 0 {
			errs = append(errs, fmt.Errorf("prometheus range %v and step %v must be positive", o.PromRange, o.PromStep))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown source %q, file and prom are available", o.Source))
	}

	switch o.Report.OutputMode {
	case "", report.OutputModeStdOut, report.OutputModeCsv, report.OutputModeJson:
	default:
		errs = append(errs, fmt.Errorf("unknown output mode %q, stdout, csv and json are available", o.Report.OutputMode))
	}

	if o.Alpha < 0 || o.Alpha > 1 || math.IsNaN(o.Alpha) {
		errs = append(errs, fmt.Errorf("alpha %v out of range [0, 1]", o.Alpha))
	}

	known := sets.NewString()
	for _, kind := range estimator.Kinds() {
		known.Insert(string(kind))
	}
	if len(o.Requests) == 0 {
		errs = append(errs, fmt.Errorf("no estimators requested"))
	}
	for _, req := range o.Requests {
		if !known.Has(string(req.Kind)) {
			errs = append(errs, fmt.Errorf("unknown estimator %q, available: %s", req.Kind, strings.Join(known.List(), ", ")))
		}
	}

	return utilerrors.NewAggregate(errs)
}

// AddFlags adds flags to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	if fs == nil {
		return
	}

	fs.StringVar(&o.ConfigFile, "config", "", "gcfg file with sample, prometheus, output and estimator sections, flags override it")
	fs.StringVar(&o.Source, "source", consts.SourceFile, "source of the sample, file or prom")
	fs.StringSliceVar(&o.Estimators, "estimators", nil, "estimators to calculate, all registered estimators if not specified")
	fs.IntVar(&o.K, "k", consts.DefaultMomentOrder, "order of the central moment")
	fs.Float64Var(&o.Alpha, "alpha", consts.DefaultQuantileAlpha, "quantile level in [0, 1)")

	fs.StringVar(&o.PromConfig.Address, "prometheus-address", "", "prometheus address")
	fs.StringVar(&o.PromConfig.Auth.Username, "prometheus-auth-username", "", "prometheus auth username")
	fs.StringVar(&o.PromConfig.Auth.Password, "prometheus-auth-password", "", "prometheus auth password")
	fs.StringVar(&o.PromConfig.Auth.BearerToken, "prometheus-auth-bearertoken", "", "prometheus auth bearertoken")
	fs.BoolVar(&o.PromConfig.InsecureSkipVerify, "prometheus-insecure-skip-verify", false, "prometheus insecure skip verify")
	fs.DurationVar(&o.PromConfig.KeepAlive, "prometheus-keepalive", 60*time.Second, "prometheus keep alive")
	fs.DurationVar(&o.PromConfig.Timeout, "prometheus-timeout", 3*time.Minute, "prometheus timeout")
	fs.StringVar(&o.PromQuery, "prometheus-query", "", "PromQL range query whose values form the sample")
	fs.DurationVar(&o.PromRange, "prometheus-range", 24*time.Hour, "history length of the range query, ending now")
	fs.DurationVar(&o.PromStep, "prometheus-step", 5*time.Minute, "step of the range query")

	fs.StringVar(&o.Report.OutputMode, "output-mode", "", "results output mode, includes stdout, csv, json. if no specified, a table print and a csv file are both output")
	fs.StringVar(&o.Report.DataPath, "data-path", ".", "data path of the csv report")
	fs.IntVar(&o.Report.Precision, "precision", 5, "decimals printed in table and csv reports")
	fs.StringVar(&o.MetricsTextfile, "metrics-textfile", "", "if set, calculation metrics are written to this file in the prometheus text format")
}
