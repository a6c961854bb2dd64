package app

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/prometheus/common/version"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/IlyaVysokikh/MathStatLib/cmd/mathstat/app/options"
	"github.com/IlyaVysokikh/MathStatLib/pkg/consts"
	"github.com/IlyaVysokikh/MathStatLib/pkg/estimator"
	"github.com/IlyaVysokikh/MathStatLib/pkg/log"
	"github.com/IlyaVysokikh/MathStatLib/pkg/metrics"
	"github.com/IlyaVysokikh/MathStatLib/pkg/report"
	"github.com/IlyaVysokikh/MathStatLib/pkg/sample"
)

// NewMathStatCommand creates a *cobra.Command object with default parameters
func NewMathStatCommand(ctx context.Context) *cobra.Command {
	opts := options.NewOptions()

	cmd := &cobra.Command{
		Use:     "mathstat [flags] [sample-file|-]",
		Long:    `mathstat calculates point estimates of a numeric sample read from a file, stdin or a prometheus range query`,
		Args:    cobra.MaximumNArgs(1),
		Version: version.Info(),
		Run: func(cmd *cobra.Command, args []string) {
			if err := opts.Complete(cmd.Flags(), args); err != nil {
				klog.Errorf("opts complete failed, exit: %v", err)
				os.Exit(255)
			}
			if err := opts.Validate(); err != nil {
				klog.Errorf("opts validate failed, exit: %v", err)
				os.Exit(255)
			}

			if err := Run(ctx, opts); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().AddGoFlagSet(flag.CommandLine)
	opts.AddFlags(cmd.Flags())
	return cmd
}

// Run evaluates the requested estimators over the sample once and reports the results.
func Run(ctx context.Context, opts *options.Options) error {
	src, err := NewSource(opts)
	if err != nil {
		return err
	}
	log.Logger().V(2).Info("Evaluating estimators", "source", src.String(), "count", len(opts.Requests))

	stats, err := estimator.Run(ctx, src, opts.Requests)
	if err != nil {
		return fmt.Errorf("failed to load sample: %w", err)
	}

	reporter := report.NewReporter(opts.Report, os.Stdout)
	if err = reporter.Report(stats); err != nil {
		return err
	}

	if opts.MetricsTextfile != "" {
		if err = metrics.WriteTextfile(opts.MetricsTextfile); err != nil {
			return fmt.Errorf("failed to write metrics to %s: %w", opts.MetricsTextfile, err)
		}
		klog.V(2).Infof("Wrote metrics textfile %s", opts.MetricsTextfile)
	}
	return nil
}

// NewSource builds the sample source selected by the options.
func NewSource(opts *options.Options) (sample.Source, error) {
	switch opts.Source {
	case consts.SourcePrometheus:
		return sample.NewPromSource(&opts.PromConfig, opts.PromQuery, opts.PromRange, opts.PromStep)
	case consts.SourceFile, "":
		return sample.Open(opts.SamplePath), nil
	default:
		return nil, fmt.Errorf("unknown source %q", opts.Source)
	}
}
