// Package main provides a CLI command for summarizing text files with the
// extractive summarizer used by the notes API.
// Usage: notes-summarize [-n N] [-output text|json] [file ...]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"notes-backend/internal/infra/summarizer"
	"notes-backend/internal/observability/logging"
)

// maxConcurrentFiles bounds how many files are read and summarized at once.
const maxConcurrentFiles = 8

// stdinName labels the summary read from standard input.
const stdinName = "-"

// SummaryOutput is one entry of the JSON output.
type SummaryOutput struct {
	Source  string `json:"source"`
	Summary string `json:"summary"`
	Method  string `json:"method"`
}

func main() {
	_ = godotenv.Load()
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("notes-summarize", flag.ContinueOnError)
	fs.SetOutput(stderr)
	maxSentences := fs.Int("n", 3, "Maximum number of sentences per summary")
	outputFormat := fs.String("output", "text", "Output format: text or json")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: notes-summarize [-n N] [-output text|json] [file ...]")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Reads standard input when no file is given.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *maxSentences < 1 {
		fmt.Fprintf(stderr, "Error: -n must be at least 1, got %d\n", *maxSentences)
		return 2
	}
	if *outputFormat != "text" && *outputFormat != "json" {
		fmt.Fprintf(stderr, "Error: invalid output format %q (must be 'text' or 'json')\n", *outputFormat)
		return 2
	}

	logger := logging.NewTextLogger()
	ext := summarizer.NewExtractiveWithRecorder(nil)

	var results []SummaryOutput
	var err error
	if fs.NArg() == 0 {
		results, err = summarizeReader(ctx, ext, stdin, *maxSentences)
	} else {
		results, err = summarizeFiles(ctx, ext, fs.Args(), *maxSentences)
	}
	if err != nil {
		logger.Error("summarize failed", slog.Any("error", err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if *outputFormat == "json" {
		if err := outputJSON(stdout, results); err != nil {
			fmt.Fprintf(stderr, "Error: failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	}
	outputText(stdout, results)
	return 0
}

// summarizeReader summarizes everything read from r.
func summarizeReader(ctx context.Context, ext *summarizer.Extractive, r io.Reader, n int) ([]SummaryOutput, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	summary, err := ext.Summarize(ctx, string(content), n)
	if err != nil {
		return nil, err
	}
	return []SummaryOutput{{Source: stdinName, Summary: summary, Method: ext.Method()}}, nil
}

// summarizeFiles summarizes each file concurrently; results keep argument order.
// The first failure cancels the remaining work.
func summarizeFiles(ctx context.Context, ext *summarizer.Extractive, paths []string, n int) ([]SummaryOutput, error) {
	results := make([]SummaryOutput, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFiles)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			summary, err := ext.Summarize(gctx, string(content), n)
			if err != nil {
				return fmt.Errorf("summarize %s: %w", path, err)
			}
			results[i] = SummaryOutput{Source: path, Summary: summary, Method: ext.Method()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// outputText prints one summary per line; with several sources each is prefixed by its name.
func outputText(w io.Writer, results []SummaryOutput) {
	if len(results) == 1 {
		fmt.Fprintln(w, results[0].Summary)
		return
	}
	for _, r := range results {
		fmt.Fprintf(w, "==> %s <==\n%s\n", r.Source, r.Summary)
	}
}

// outputJSON prints the results as an indented JSON array.
func outputJSON(w io.Writer, results []SummaryOutput) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}
