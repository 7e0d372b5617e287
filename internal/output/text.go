package output

import (
	"io"
	"strings"
)

// TextWriter prints the review as returned by the model, with a short
// header naming the model.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}

	if report.Provider != "" {
		ew.printf("Code review by %s (%s)", report.Provider, report.Model)
		if report.Mode != "" {
			ew.printf(" of %s", describeSource(report))
		}
		ew.println("")
		if repo := describeRepo(report.Repo); repo != "" {
			ew.printf("Repository: %s\n", repo)
		}
		ew.println(strings.Repeat("─", 60))
	}
	ew.println(strings.TrimRight(report.Review, "\n"))
	return ew.err
}

func describeSource(report *Report) string {
	switch {
	case report.Range != "":
		return report.Mode + " " + report.Range
	case len(report.Files) == 1:
		return report.Mode + " " + report.Files[0]
	default:
		return report.Mode
	}
}
