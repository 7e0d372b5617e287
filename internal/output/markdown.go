package output

import (
	"io"
	"strings"
	"time"
)

// MarkdownWriter writes a document suitable for saving as a .md file.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}

	ew.printf("# Code Review\n\n")
	if report.Provider != "" {
		ew.printf("_Model: %s / `%s`_", report.Provider, report.Model)
		if report.Mode != "" {
			ew.printf(" · _Source: %s_", describeSource(report))
		}
		ew.printf("\n\n")
	}
	if repo := describeRepo(report.Repo); repo != "" {
		ew.printf("_Repository: `%s`_\n\n", repo)
	}
	if len(report.Files) > 1 {
		ew.println("<details>")
		ew.printf("<summary>%d files</summary>\n\n", len(report.Files))
		for _, f := range report.Files {
			ew.printf("- `%s`\n", f)
		}
		ew.printf("\n</details>\n\n")
	}

	ew.println(strings.TrimRight(report.Review, "\n"))
	ew.printf("\n---\n\n")

	created := report.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	ew.printf("*Generated %s", created.Format("2006-01-02 15:04"))
	if report.Elapsed > 0 {
		ew.printf(" in %dms", report.Elapsed.Milliseconds())
	}
	ew.println("*")
	return ew.err
}
