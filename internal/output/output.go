package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dshills/diffreview/internal/gitctx"
	"github.com/dshills/diffreview/internal/review"
)

// Report is a review result plus where its diff came from.
type Report struct {
	review.Result
	Mode      string          `json:"mode,omitempty"`
	Range     string          `json:"range,omitempty"`
	Files     []string        `json:"files,omitempty"`
	Repo      gitctx.RepoMeta `json:"repo,omitzero"`
	Elapsed   time.Duration   `json:"-"`
	CreatedAt time.Time       `json:"createdAt,omitzero"`
}

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *Report) error
}

// Formats lists the accepted format names.
func Formats() []string {
	return []string{"text", "markdown", "json"}
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text":
		return &TextWriter{}, nil
	case "markdown", "md":
		return &MarkdownWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// DefaultFilename is the name a saved review gets when no path is given.
func DefaultFilename(t time.Time) string {
	return fmt.Sprintf("code_review_%s.md", t.Format("2006-01-02"))
}

// WriteResult writes the report to outPath, or stdout when outPath is empty.
func WriteResult(report *Report, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	return writer.Write(w, report)
}

// describeRepo renders "root (branch @ head)", or "" outside a repository.
func describeRepo(m gitctx.RepoMeta) string {
	if m.Root == "" {
		return ""
	}
	var parts []string
	if m.Branch != "" {
		parts = append(parts, m.Branch)
	}
	if h := m.ShortHead(); h != "" {
		parts = append(parts, "@ "+h)
	}
	if len(parts) == 0 {
		return m.Root
	}
	return m.Root + " (" + strings.Join(parts, " ") + ")"
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
