package report

type Config struct {
	// OutputMode selects where results go, empty means both a stdout table and a csv file.
	OutputMode string
	// DataPath is the directory csv reports are written to.
	DataPath string
	// Name prefixes report file names.
	Name string
	// Precision is the number of decimals printed in tables and csv files.
	Precision int
}

const (
	OutputModeCsv    = "csv"
	OutputModeStdOut = "stdout"
	OutputModeJson   = "json"
)
