package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONWriter outputs the report as JSON.
type JSONWriter struct{}

type jsonReport struct {
	*Report
	DurationMs int64 `json:"durationMs,omitempty"`
}

func (j *JSONWriter) Write(w io.Writer, report *Report) error {
	data, err := json.MarshalIndent(jsonReport{Report: report, DurationMs: report.Elapsed.Milliseconds()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
