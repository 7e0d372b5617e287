package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/diffreview/internal/gitctx"
	"github.com/dshills/diffreview/internal/review"
)

func sampleReport() *Report {
	return &Report{
		Result: review.Result{
			Review:   "### File: main.go\n\n- Missing error check.\n",
			Provider: "anthropic",
			Model:    "claude-sonnet-4-20250514",
		},
		Mode:      "staged",
		Files:     []string{"main.go", "util.go"},
		Repo:      gitctx.RepoMeta{Root: "/src/app", Branch: "main", Head: "0123456789abcdef0123"},
		Elapsed:   1500 * time.Millisecond,
		CreatedAt: time.Date(2025, 3, 7, 9, 30, 0, 0, time.UTC),
	}
}

func TestGetWriter(t *testing.T) {
	for _, f := range append(Formats(), "md") {
		if _, err := GetWriter(f); err != nil {
			t.Errorf("GetWriter(%q) error: %v", f, err)
		}
	}
	if _, err := GetWriter("sarif"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestDefaultFilename(t *testing.T) {
	got := DefaultFilename(time.Date(2025, 3, 7, 23, 59, 0, 0, time.UTC))
	if got != "code_review_2025-03-07.md" {
		t.Errorf("DefaultFilename = %q", got)
	}
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextWriter{}).Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Code review by anthropic (claude-sonnet-4-20250514) of staged") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "Repository: /src/app (main @ 0123456789ab)") {
		t.Errorf("missing repository line:\n%s", out)
	}
	if !strings.Contains(out, "- Missing error check.") {
		t.Errorf("missing review body:\n%s", out)
	}
}

func TestTextWriter_BareReview(t *testing.T) {
	var buf bytes.Buffer
	report := &Report{Result: review.Result{Review: "LGTM"}}
	if err := (&TextWriter{}).Write(&buf, report); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "LGTM\n" {
		t.Errorf("output = %q, want review only", buf.String())
	}
}

func TestMarkdownWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownWriter{}).Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"# Code Review",
		"`claude-sonnet-4-20250514`",
		"<summary>2 files</summary>",
		"_Repository: `/src/app (main @ 0123456789ab)`_",
		"### File: main.go",
		"*Generated 2025-03-07 09:30 in 1500ms*",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if parsed["review"] != sampleReport().Review {
		t.Errorf("review = %v", parsed["review"])
	}
	if parsed["model"] != "claude-sonnet-4-20250514" {
		t.Errorf("model = %v", parsed["model"])
	}
	repo, _ := parsed["repo"].(map[string]any)
	if repo["branch"] != "main" || repo["root"] != "/src/app" {
		t.Errorf("repo = %v", parsed["repo"])
	}
	if parsed["durationMs"] != float64(1500) {
		t.Errorf("durationMs = %v", parsed["durationMs"])
	}
	for k := range parsed {
		if strings.Contains(strings.ToLower(k), "key") {
			t.Errorf("unexpected field %q", k)
		}
	}
}

func TestWriteResult_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFilename(time.Now()))
	if err := WriteResult(sampleReport(), "markdown", path); err != nil {
		t.Fatalf("WriteResult error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# Code Review") {
		t.Errorf("file content = %q", data)
	}
}

func TestWriteResult_BadFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := WriteResult(sampleReport(), "xml", path); err == nil {
		t.Error("expected error for bad format")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be created for a bad format")
	}
}

func TestJSONWriter_NoRepoOutsideGit(t *testing.T) {
	var buf bytes.Buffer
	report := &Report{Result: review.Result{Review: "ok"}, Mode: "file"}
	if err := (&JSONWriter{}).Write(&buf, report); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), `"repo"`) {
		t.Errorf("repo should be omitted for file input: %s", buf.String())
	}
}
