package consts

const (
	AppName = "mathstat"

	// DefaultMomentOrder is the central moment order used when none is configured.
	DefaultMomentOrder = 3
	// DefaultQuantileAlpha is the quantile level used when none is configured.
	DefaultQuantileAlpha = 0.5
)

const (
	SourceFile       = "file"
	SourcePrometheus = "prom"
)

//Labels of the exported metrics
const (
	LabelKind   = "kind"
	LabelResult = "result"

	ResultSuccess = "success"
	ResultError   = "error"
)
