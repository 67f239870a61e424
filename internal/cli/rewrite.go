package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/resuforge/rewriter/internal/control"
	"github.com/resuforge/rewriter/internal/core/domain"
	"github.com/resuforge/rewriter/internal/document"
	"github.com/resuforge/rewriter/internal/rewrite/keywords"
)

var (
	bulletsPath  string
	keywordsFlag string
	keywordsPath string
	styleFlag    string
	maxChars     int
	constraints  string
	outPath      string
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Rewrite a batch of bullet lines and print the results",
	Run:   runRewrite,
}

func init() {
	rewriteCmd.Flags().StringVar(&bulletsPath, "bullets", "-", "file with one bullet per line, or - for stdin")
	rewriteCmd.Flags().StringVar(&keywordsFlag, "keywords", "", "comma-separated keywords to work in")
	rewriteCmd.Flags().StringVar(&keywordsPath, "keywords-file", "", "file with one keyword per line")
	rewriteCmd.Flags().StringVar(&styleFlag, "style", "", "rewrite style: safe, bold or creative")
	rewriteCmd.Flags().IntVar(&maxChars, "max-chars", 0, "character budget applied to every bullet")
	rewriteCmd.Flags().StringVar(&constraints, "constraints", "", "comma-separated per-bullet budgets, 0 keeps the default")
	rewriteCmd.Flags().StringVar(&outPath, "out", "", "write JSON results to a file instead of stdout")
	rootCmd.AddCommand(rewriteCmd)
}

func runRewrite(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	app, err := control.NewService(cfg, slog.Default())
	if err != nil {
		slog.Error("Failed to initialize service", "error", err)
		os.Exit(1)
	}

	bullets, err := readBullets(bulletsPath)
	if err != nil {
		slog.Error("Failed to read bullets", "error", err)
		os.Exit(1)
	}

	kws, err := collectKeywords()
	if err != nil {
		slog.Error("Failed to read keywords", "error", err)
		os.Exit(1)
	}

	cons, err := parseConstraints(constraints, maxChars, len(bullets))
	if err != nil {
		slog.Error("Invalid constraints", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	run, reps, err := app.ProcessBatch(ctx, bullets, kws, cons, domain.Style(styleFlag))
	if err != nil {
		slog.Error("Batch failed", "error", err)
		os.Exit(1)
	}

	output := struct {
		RunID        string                 `json:"run_id"`
		Summary      domain.BatchSummary    `json:"summary"`
		Replacements []document.Replacement `json:"replacements"`
	}{run.ID, run.Summary, reps}

	enc := json.NewEncoder(os.Stdout)
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			slog.Error("Failed to create output file", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		enc = json.NewEncoder(f)
	}
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		slog.Error("Failed to write results", "error", err)
		os.Exit(1)
	}
}

func readBullets(path string) ([]string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var bullets []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			bullets = append(bullets, line)
		}
	}
	if len(bullets) == 0 {
		return nil, fmt.Errorf("no bullet lines in %s", path)
	}
	return bullets, nil
}

func collectKeywords() ([]string, error) {
	var kws []string
	if keywordsFlag != "" {
		for _, k := range strings.Split(keywordsFlag, ",") {
			kws = append(kws, strings.TrimSpace(k))
		}
	}
	if keywordsPath != "" {
		fromFile, err := keywords.LoadFile(keywordsPath)
		if err != nil {
			return nil, err
		}
		kws = append(kws, fromFile...)
	}
	return keywords.Normalize(kws), nil
}

// parseConstraints builds per-bullet budgets from the --constraints
// list, falling back to --max-chars for unlisted bullets.
func parseConstraints(list string, global, count int) ([]domain.Constraint, error) {
	if list == "" && global == 0 {
		return nil, nil
	}

	cons := make([]domain.Constraint, count)
	for i := range cons {
		cons[i].MaxChars = global
	}

	if list != "" {
		for i, part := range strings.Split(list, ",") {
			if i >= count {
				break
			}
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, fmt.Errorf("constraint %d: %w", i, err)
			}
			if n != 0 {
				cons[i].MaxChars = n
			}
		}
	}
	return cons, nil
}
