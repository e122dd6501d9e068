package pipeline

import "strings"

// Status values recorded on a FileResult. Error outcomes use the dynamic
// "error: <message>" form produced by errorStatus.
const (
	StatusOptimized = "optimized"
	StatusCopied    = "copied"
	StatusSkipped   = "skipped"
)

func errorStatus(err error) string {
	return "error: " + err.Error()
}

// FileResult is the outcome of processing one file. Immutable once the file
// is finished; NewSize is set only when a write actually happened.
type FileResult struct {
	Src      string
	Dest     string
	Status   string
	OrigSize int64
	NewSize  int64
}

// IsError reports whether the result carries an "error: ..." status.
func (r FileResult) IsError() bool {
	return strings.HasPrefix(r.Status, "error")
}

// RunSummary accumulates per-file results and byte totals across a batch
// run. Results keep traversal order.
type RunSummary struct {
	Results        []FileResult
	TotalOrigBytes int64
	TotalNewBytes  int64
}

// Add records one finished file and folds its sizes into the totals.
func (s *RunSummary) Add(r FileResult) {
	s.Results = append(s.Results, r)
	s.TotalOrigBytes += r.OrigSize
	s.TotalNewBytes += r.NewSize
}

// Saved returns the aggregate byte difference between sources and outputs.
// Positive means outputs are smaller; negative means they grew.
func (s *RunSummary) Saved() int64 {
	return s.TotalOrigBytes - s.TotalNewBytes
}
