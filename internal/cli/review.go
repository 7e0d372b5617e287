package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/diffreview/internal/config"
	"github.com/dshills/diffreview/internal/gitctx"
	"github.com/dshills/diffreview/internal/output"
	"github.com/dshills/diffreview/internal/providers"
	"github.com/dshills/diffreview/internal/review"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Shared review flags
var (
	flagProvider         string
	flagPro              bool
	flagAPIKey           string
	flagInstructionsFile string
	flagPreset           string
	flagFormat           string
	flagOut              string
	flagSave             bool
	flagExclude          string
	flagMaxDiffBytes     int
)

// resolveModel builds models for every command. Tests replace it.
var resolveModel review.ResolveFunc = providers.Resolve

func addReviewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (gemini, openai, anthropic, ollama)")
	cmd.Flags().BoolVar(&flagPro, "pro", false, "Use the provider's stronger model")
	cmd.Flags().StringVar(&flagAPIKey, "api-key", "", "API key (default: the provider's environment variable)")
	cmd.Flags().StringVar(&flagInstructionsFile, "instructions-file", "", "Read review instructions from a file")
	cmd.Flags().StringVar(&flagPreset, "preset", "", "Instructions preset ("+strings.Join(review.PresetNames(), ", ")+")")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format ("+strings.Join(output.Formats(), ", ")+")")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&flagSave, "save", false, "Save the review as code_review_<date>.md")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "Exclude file path globs (comma-separated)")
	cmd.Flags().IntVar(&flagMaxDiffBytes, "max-diff-bytes", 0, "Truncate the diff to this many bytes (0: no limit)")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagPro {
		m["useProModel"] = "true"
	}
	if flagPreset != "" {
		m["preset"] = flagPreset
	}
	if flagInstructionsFile != "" {
		m["instructionsFile"] = flagInstructionsFile
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagMaxDiffBytes > 0 {
		m["maxDiffBytes"] = strconv.Itoa(flagMaxDiffBytes)
	}
	return m
}

func loadConfig(overrides map[string]string) (config.Config, error) {
	cfg, err := config.Load(overrides)
	if err != nil {
		return config.Config{}, err
	}
	setupLogging(cfg.LogLevel)
	return cfg, nil
}

func buildDiffOpts(cfg config.Config) gitctx.DiffOptions {
	opts := gitctx.DiffOptions{
		MaxDiffBytes: cfg.MaxDiffBytes,
		Exclude:      cfg.Exclude,
	}
	if flagExclude != "" {
		opts.Exclude = append(opts.Exclude, splitComma(flagExclude)...)
	}
	return opts
}

func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// parseProvider normalizes aliases. Unknown names pass through so the
// dispatcher reports them after checking the key and inputs.
func parseProvider(name string) providers.Provider {
	p, err := providers.ParseProvider(name)
	if err != nil {
		return providers.Provider(name)
	}
	return p
}

// resolveAPIKey prefers --api-key, then the provider's environment variable.
func resolveAPIKey(p providers.Provider) string {
	if flagAPIKey != "" {
		return flagAPIKey
	}
	return config.LookupAPIKey(p)
}

// resolveInstructions reads the instructions file if one is configured,
// otherwise the preset.
func resolveInstructions(cfg config.Config) (string, error) {
	if cfg.InstructionsFile != "" {
		data, err := os.ReadFile(cfg.InstructionsFile)
		if err != nil {
			return "", fmt.Errorf("reading instructions file: %w", err)
		}
		return string(data), nil
	}
	return review.Instructions(cfg.Preset)
}

// resolverFor applies configured endpoint overrides for whichever provider
// a request names.
func resolverFor(cfg config.Config) review.ResolveFunc {
	return func(p providers.Provider, apiKey string, useStrong bool, opts ...providers.Option) (providers.Model, error) {
		if u := cfg.Endpoints.For(p); u != "" {
			opts = append(opts, providers.WithBaseURL(u))
		}
		return resolveModel(p, apiKey, useStrong, opts...)
	}
}

func newDispatcher(cfg config.Config) *review.Dispatcher {
	return review.NewDispatcher(
		review.WithResolver(resolverFor(cfg)),
		review.WithLogger(log.Logger),
	)
}

// fail reports an error on the command's stderr and records the exit code.
func fail(cmd *cobra.Command, code int, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: "+format+"\n", args...)
	exitCode = code
}

func runReview(ctx context.Context, cmd *cobra.Command, diff gitctx.DiffResult, cfg config.Config) {
	if _, err := output.GetWriter(cfg.Format); err != nil {
		fail(cmd, ExitUsageError, "%v", err)
		return
	}
	instructions, err := resolveInstructions(cfg)
	if err != nil {
		fail(cmd, ExitUsageError, "%v", err)
		return
	}

	p := parseProvider(cfg.Provider)
	req := review.Request{
		Diff:           diff.Diff,
		Instructions:   instructions,
		Provider:       p,
		APIKey:         resolveAPIKey(p),
		UseStrongModel: cfg.UseProModel,
	}

	start := time.Now()
	res, err := newDispatcher(cfg).Review(ctx, req)
	if err != nil {
		code := exitCodeFor(err)
		if review.KindOf(err) == review.MissingAPIKey {
			fail(cmd, code, "%v (use --api-key or set %s)", err, strings.Join(config.APIKeyEnv(p), " or "))
			return
		}
		fail(cmd, code, "%v", err)
		return
	}

	report := &output.Report{
		Result:    res,
		Mode:      diff.Mode,
		Range:     diff.Range,
		Files:     diff.Files,
		Repo:      diff.Repo,
		Elapsed:   time.Since(start),
		CreatedAt: time.Now(),
	}

	outPath := flagOut
	if outPath == "" && flagSave {
		outPath = output.DefaultFilename(report.CreatedAt)
	}
	if err := output.WriteResult(report, cfg.Format, outPath); err != nil {
		fail(cmd, ExitRuntimeError, "writing output: %v", err)
		return
	}
	if outPath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Review saved to %s\n", outPath)
	}
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review a diff",
	Long:  "Review a diff using an LLM provider. Use subcommands to choose where the diff comes from.",
}

// diffSource runs a review over whatever get returns.
func diffSource(get func(ctx context.Context, args []string, opts gitctx.DiffOptions) (gitctx.DiffResult, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(buildOverrides())
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		diff, err := get(ctx, args, buildDiffOpts(cfg))
		if err != nil {
			fail(cmd, ExitRuntimeError, "%v", err)
			return nil
		}
		runReview(ctx, cmd, diff, cfg)
		return nil
	}
}

var reviewFileCmd = &cobra.Command{
	Use:   "file <path|->",
	Short: "Review a diff file, or stdin with -",
	Args:  cobra.ExactArgs(1),
	RunE: diffSource(func(ctx context.Context, args []string, opts gitctx.DiffOptions) (gitctx.DiffResult, error) {
		return gitctx.FromFile(args[0], opts)
	}),
}

var reviewUnstagedCmd = &cobra.Command{
	Use:   "unstaged",
	Short: "Review unstaged changes (working tree vs index)",
	Args:  cobra.NoArgs,
	RunE: diffSource(func(ctx context.Context, args []string, opts gitctx.DiffOptions) (gitctx.DiffResult, error) {
		return gitctx.Unstaged(ctx, opts)
	}),
}

var reviewStagedCmd = &cobra.Command{
	Use:   "staged",
	Short: "Review staged changes (index vs HEAD)",
	Args:  cobra.NoArgs,
	RunE: diffSource(func(ctx context.Context, args []string, opts gitctx.DiffOptions) (gitctx.DiffResult, error) {
		return gitctx.Staged(ctx, opts)
	}),
}

var (
	flagParent string
)

var reviewCommitCmd = &cobra.Command{
	Use:   "commit <sha>",
	Short: "Review a specific commit",
	Args:  cobra.ExactArgs(1),
	RunE: diffSource(func(ctx context.Context, args []string, opts gitctx.DiffOptions) (gitctx.DiffResult, error) {
		return gitctx.Commit(ctx, args[0], flagParent, opts)
	}),
}

var (
	flagMergeBase bool
)

var reviewRangeCmd = &cobra.Command{
	Use:   "range <revRange>",
	Short: "Review a revision range (e.g., origin/main..HEAD)",
	Args:  cobra.ExactArgs(1),
	RunE: diffSource(func(ctx context.Context, args []string, opts gitctx.DiffOptions) (gitctx.DiffResult, error) {
		return gitctx.Range(ctx, args[0], flagMergeBase, opts)
	}),
}

func init() {
	reviewCmd.AddCommand(reviewFileCmd)
	reviewCmd.AddCommand(reviewUnstagedCmd)
	reviewCmd.AddCommand(reviewStagedCmd)
	reviewCmd.AddCommand(reviewCommitCmd)
	reviewCmd.AddCommand(reviewRangeCmd)

	for _, cmd := range []*cobra.Command{
		reviewFileCmd,
		reviewUnstagedCmd,
		reviewStagedCmd,
		reviewCommitCmd,
		reviewRangeCmd,
	} {
		addReviewFlags(cmd)
	}

	reviewCommitCmd.Flags().StringVar(&flagParent, "parent", "", "Override parent SHA (for merge commits)")
	reviewRangeCmd.Flags().BoolVar(&flagMergeBase, "merge-base", true, "Use merge base for branch comparisons")
}
