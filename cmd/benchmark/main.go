// ABOUTME: Command-line benchmark runner for regulation retrieval quality
// ABOUTME: Loads the index, runs the built-in questions and writes JSON results

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/harper/race-engineer/benchmarks/ragas"
	"github.com/harper/race-engineer/internal/app"
	"github.com/harper/race-engineer/internal/logging"
)

// options are the parsed command-line flags
type options struct {
	testID     string
	outputPath string
	configPath string
	verbose    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.testID, "test", "", "Run specific test ("+strings.Join(ragas.TestIDs(), ", ")+"). If empty, runs all tests.")
	flag.StringVar(&opts.outputPath, "output", "benchmark_results.json", "Output path for JSON results")
	flag.StringVar(&opts.configPath, "config", "", "Optional YAML config file")
	flag.BoolVar(&opts.verbose, "verbose", false, "Enable verbose output")
	flag.Parse()

	logger := logging.New(opts.verbose, !opts.verbose)
	defer func() { _ = logger.Sync() }()

	summary, err := run(context.Background(), opts, os.Stdout, logger)
	if err != nil {
		logger.Fatal("benchmark failed", zap.Error(err))
	}
	if summary.Failed > 0 {
		_ = logger.Sync()
		os.Exit(1)
	}
}

// selectScenarios returns every built-in scenario, or only the one named by id
func selectScenarios(id string) ([]ragas.TestScenario, error) {
	if id == "" {
		return ragas.GetAllTests(), nil
	}
	scenario, ok := ragas.GetTest(id)
	if !ok {
		return nil, fmt.Errorf("unknown test ID %q (valid options: %s)", id, strings.Join(ragas.TestIDs(), ", "))
	}
	return []ragas.TestScenario{scenario}, nil
}

// run loads the index, runs the selected scenarios, prints a report and exports JSON
func run(ctx context.Context, opts options, out io.Writer, logger *zap.Logger) (ragas.Summary, error) {
	scenarios, err := selectScenarios(opts.testID)
	if err != nil {
		return ragas.Summary{}, err
	}

	cfg, err := app.LoadConfig(opts.configPath, logger)
	if err != nil {
		return ragas.Summary{}, fmt.Errorf("loading config: %w", err)
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		return ragas.Summary{}, fmt.Errorf("initializing: %w", err)
	}

	if err := a.Start(ctx); err != nil {
		return ragas.Summary{}, fmt.Errorf("building or loading the regulations index: %w", err)
	}

	fmt.Fprintln(out, "========================================")
	fmt.Fprintln(out, "Regulation Retrieval Benchmarks")
	fmt.Fprintln(out, "========================================")

	runner := ragas.NewBenchmarkRunner(a.Retriever, out, opts.verbose, logger)
	results, err := runner.RunAllTests(ctx, scenarios)
	if err != nil {
		return ragas.Summary{}, err
	}

	summary := ragas.Summarize(results, time.Now())
	for _, result := range results {
		fmt.Fprintf(out, "\n%s: %s\n", result.TestID, result.TestName)
		fmt.Fprintf(out, "  Faithfulness: %.2f\n", result.FaithfulnessScore)
		fmt.Fprintf(out, "  Context Recall: %.2f\n", result.ContextRecallScore)
		fmt.Fprintf(out, "  Page Hit: %t\n", result.PageHit)
		fmt.Fprintf(out, "  Status: %s\n", result.Status)
		if result.ErrorMessage != "" {
			fmt.Fprintf(out, "  Error: %s\n", result.ErrorMessage)
		}
	}

	fmt.Fprintln(out, "\n========================================")
	fmt.Fprintf(out, "Total Tests: %d\n", summary.TotalTests)
	fmt.Fprintf(out, "Passed: %d\n", summary.Passed)
	fmt.Fprintf(out, "Failed: %d\n", summary.Failed)
	fmt.Fprintln(out, "========================================")

	if err := runner.ExportResults(results, opts.outputPath); err != nil {
		return summary, err
	}
	fmt.Fprintf(out, "Results exported to: %s\n", opts.outputPath)

	return summary, nil
}
