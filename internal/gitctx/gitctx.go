package gitctx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrBinaryInput is returned when a diff source contains NUL bytes.
var ErrBinaryInput = errors.New("appears to be a binary file")

// DiffOptions controls how diffs are gathered.
type DiffOptions struct {
	MaxDiffBytes int
	Exclude      []string
}

// DiffResult holds the collected diff and metadata.
type DiffResult struct {
	Diff  string
	Files []string
	Mode  string
	Range string
	Repo  RepoMeta
}

// RepoMeta contains git repository metadata.
type RepoMeta struct {
	Root   string `json:"root,omitempty"`
	Head   string `json:"head,omitempty"`
	Branch string `json:"branch,omitempty"`
}

// ShortHead is the abbreviated HEAD commit, or "" if unknown.
func (m RepoMeta) ShortHead() string {
	if len(m.Head) > 12 {
		return m.Head[:12]
	}
	return m.Head
}

// FromFile reads a diff from path. "-" reads standard input.
func FromFile(path string, opts DiffOptions) (DiffResult, error) {
	if path == "-" {
		return FromReader(os.Stdin, "stdin", opts)
	}
	f, err := os.Open(path)
	if err != nil {
		return DiffResult{}, fmt.Errorf("opening diff file: %w", err)
	}
	defer f.Close()
	return FromReader(f, filepath.Base(path), opts)
}

// FromReader reads a whole diff from r. name is only used in error messages.
func FromReader(r io.Reader, name string, opts DiffOptions) (DiffResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return DiffResult{}, fmt.Errorf("reading %s: %w", name, err)
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return DiffResult{}, fmt.Errorf("%s %w", name, ErrBinaryInput)
	}
	res := buildResult(string(data), "file", "", opts)
	return res, nil
}

// GetRepoMeta collects repository metadata from git.
func GetRepoMeta(ctx context.Context) (RepoMeta, error) {
	root, err := gitOutput(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return RepoMeta{}, fmt.Errorf("not a git repository: %w", err)
	}
	head, err := gitOutput(ctx, "rev-parse", "HEAD")
	if err != nil {
		head = "" // no commits yet
	}
	branch, err := gitOutput(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		branch = ""
	}
	return RepoMeta{
		Root:   strings.TrimSpace(root),
		Head:   strings.TrimSpace(head),
		Branch: strings.TrimSpace(branch),
	}, nil
}

// Unstaged returns the diff of working tree vs index.
func Unstaged(ctx context.Context, opts DiffOptions) (DiffResult, error) {
	diff, err := gitOutput(ctx, "diff")
	if err != nil {
		return DiffResult{}, fmt.Errorf("git diff: %w", err)
	}
	return withRepo(ctx, buildResult(diff, "unstaged", "", opts)), nil
}

// Staged returns the diff of index vs HEAD.
func Staged(ctx context.Context, opts DiffOptions) (DiffResult, error) {
	diff, err := gitOutput(ctx, "diff", "--cached")
	if err != nil {
		return DiffResult{}, fmt.Errorf("git diff --cached: %w", err)
	}
	return withRepo(ctx, buildResult(diff, "staged", "", opts)), nil
}

// Commit returns the diff for a commit against parent, or against its first
// parent when parent is empty. Root commits fall back to git show.
func Commit(ctx context.Context, sha, parent string, opts DiffOptions) (DiffResult, error) {
	base := parent
	if base == "" {
		base = sha + "~1"
	}
	diff, err := gitOutput(ctx, "diff", base, sha)
	if err != nil {
		if parent != "" {
			return DiffResult{}, fmt.Errorf("git diff %s %s: %w", parent, sha, err)
		}
		diff, err = gitOutput(ctx, "show", "--format=", sha)
		if err != nil {
			return DiffResult{}, fmt.Errorf("git show %s: %w", sha, err)
		}
	}
	return withRepo(ctx, buildResult(diff, "commit", sha, opts)), nil
}

// Range returns the combined diff for a revision range. With mergeBase, "a..b"
// is compared as "a...b".
func Range(ctx context.Context, revRange string, mergeBase bool, opts DiffOptions) (DiffResult, error) {
	diffRange := revRange
	if mergeBase && strings.Contains(revRange, "..") && !strings.Contains(revRange, "...") {
		diffRange = strings.Replace(revRange, "..", "...", 1)
	}
	diff, err := gitOutput(ctx, "diff", diffRange)
	if err != nil {
		return DiffResult{}, fmt.Errorf("git diff %s: %w", revRange, err)
	}
	return withRepo(ctx, buildResult(diff, "range", revRange, opts)), nil
}

func withRepo(ctx context.Context, res DiffResult) DiffResult {
	if meta, err := GetRepoMeta(ctx); err == nil {
		res.Repo = meta
	}
	return res
}

func buildResult(diff, mode, rangeStr string, opts DiffOptions) DiffResult {
	files := extractFiles(diff)

	// Excludes go first so they don't consume the byte budget.
	if len(opts.Exclude) > 0 {
		diff = filterExcluded(diff, opts.Exclude)
		files = filterFileList(files, opts.Exclude)
	}

	if opts.MaxDiffBytes > 0 && len(diff) > opts.MaxDiffBytes {
		cut := opts.MaxDiffBytes
		// Never split a multi-byte rune.
		for cut > 0 && !utf8.RuneStart(diff[cut]) {
			cut--
		}
		diff = diff[:cut] + "\n... (diff truncated at max-diff-bytes limit)\n"
	}

	return DiffResult{
		Diff:  diff,
		Files: files,
		Mode:  mode,
		Range: rangeStr,
	}
}

func extractFiles(diff string) []string {
	var files []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(diff, "\n") {
		if f, ok := strings.CutPrefix(line, "+++ b/"); ok && !seen[f] {
			seen[f] = true
			files = append(files, f)
		}
	}
	return files
}

func filterExcluded(diff string, excludes []string) string {
	var kept []string
	for _, section := range splitDiffSections(diff) {
		path := extractPathFromSection(section)
		if path == "" || !MatchesAny(path, excludes) {
			kept = append(kept, section)
		}
	}
	return strings.Join(kept, "")
}

// splitDiffSections cuts a unified diff at each "diff --git" header. Text
// before the first header stays attached to the first section.
func splitDiffSections(diff string) []string {
	var sections []string
	var current strings.Builder
	for _, line := range strings.SplitAfter(diff, "\n") {
		if strings.HasPrefix(line, "diff --git") && current.Len() > 0 {
			sections = append(sections, current.String())
			current.Reset()
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		sections = append(sections, current.String())
	}
	return sections
}

func extractPathFromSection(section string) string {
	for _, line := range strings.Split(section, "\n") {
		if p, ok := strings.CutPrefix(line, "+++ b/"); ok {
			return p
		}
	}
	// Deleted files only carry the old path.
	for _, line := range strings.Split(section, "\n") {
		if p, ok := strings.CutPrefix(line, "--- a/"); ok {
			return p
		}
	}
	return ""
}

func filterFileList(files []string, excludes []string) []string {
	var result []string
	for _, f := range files {
		if !MatchesAny(f, excludes) {
			result = append(result, f)
		}
	}
	return result
}

// MatchesAny returns true if the path matches any of the given glob patterns.
// A leading "**/" also matches the pattern against the base name.
func MatchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := filepath.Match(pattern, path); err == nil && matched {
			return true
		}
		if dir, ok := strings.CutSuffix(pattern, "/**"); ok && strings.HasPrefix(path, dir+"/") {
			return true
		}
		clean := strings.TrimPrefix(pattern, "**/")
		if clean != pattern {
			if matched, err := filepath.Match(clean, filepath.Base(path)); err == nil && matched {
				return true
			}
			if matched, err := filepath.Match(clean, path); err == nil && matched {
				return true
			}
		}
	}
	return false
}

func gitOutput(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), fmt.Errorf("%s: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}
