package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	jsoniter "github.com/json-iterator/go"
	"github.com/olekukonko/tablewriter"
	"k8s.io/klog/v2"

	"github.com/IlyaVysokikh/MathStatLib/pkg/spec"
)

var header = []string{"Statistic", "Source", "Size", "Value", "Duration", "Error"}

// Reporter renders evaluated statistics.
type Reporter struct {
	config Config
	out    io.Writer
}

func NewReporter(config Config, out io.Writer) *Reporter {
	if config.Precision <= 0 {
		config.Precision = 5
	}
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{config: config, out: out}
}

// Report writes the statistics according to the configured output mode.
func (r *Reporter) Report(stats []spec.Statistic) error {
	mode := r.config.OutputMode
	switch mode {
	case "", OutputModeStdOut, OutputModeCsv, OutputModeJson:
	default:
		return fmt.Errorf("unknown output mode %q", mode)
	}

	if mode == OutputModeJson {
		return r.ReportJson(stats)
	}
	if mode == "" || mode == OutputModeStdOut {
		r.ReportTable(stats)
	}
	if mode == "" || mode == OutputModeCsv {
		filename, err := r.ReportCsv(stats)
		if err != nil {
			return err
		}
		klog.V(2).Infof("Wrote csv report %s", filename)
	}
	return nil
}

func (r *Reporter) rows(stats []spec.Statistic) [][]string {
	data := [][]string{}
	for i := range stats {
		stat := &stats[i]
		value := ""
		if stat.Value != nil {
			value = r.formatFloat(*stat.Value)
		}
		errStr := ""
		if stat.Err != nil {
			errStr = stat.Err.Error()
		}
		data = append(data,
			[]string{stat.Name(), stat.Source, humanize.Comma(int64(stat.Size)), value, stat.Duration.String(), errStr},
		)
	}
	return data
}

func (r *Reporter) formatFloat(a float64) string {
	return strconv.FormatFloat(a, 'f', r.config.Precision, 64)
}

// ReportTable prints the statistics as a table.
func (r *Reporter) ReportTable(stats []spec.Statistic) {
	table := tablewriter.NewWriter(r.out)
	table.SetHeaderLine(true)
	table.SetAutoFormatHeaders(false)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(r.rows(stats))
	table.Render()
}

// CsvFileName is where ReportCsv writes.
func (r *Reporter) CsvFileName() string {
	name := r.config.Name
	if name == "" {
		name = "mathstat"
	}
	return filepath.Join(r.config.DataPath, name+"-statistics.csv")
}

// ReportCsv writes the statistics as a tab separated file and returns its name.
func (r *Reporter) ReportCsv(stats []spec.Statistic) (string, error) {
	filename := r.CsvFileName()
	csvFile, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	csvW := csv.NewWriter(csvFile)
	csvW.Comma = '\t'
	if err = csvW.Write(header); err != nil {
		return "", err
	}
	if err = csvW.WriteAll(r.rows(stats)); err != nil {
		return "", err
	}
	return filename, csvFile.Close()
}

// ReportJson writes the statistics as a json array.
func (r *Reporter) ReportJson(stats []spec.Statistic) error {
	var json = jsoniter.ConfigCompatibleWithStandardLibrary
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(stats)
}
