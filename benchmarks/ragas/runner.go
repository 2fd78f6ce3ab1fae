// ABOUTME: Benchmark runner that asks each scenario question against a loaded retriever
// ABOUTME: Collects sources and agent answers, scores them, and exports JSON results

package ragas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/harper/race-engineer/internal/logging"
	"github.com/harper/race-engineer/internal/models"
)

// Retriever is the part of core.Retriever the benchmark exercises
type Retriever interface {
	Query(ctx context.Context, question string) (*models.QueryResult, error)
	GetContextForAgent(ctx context.Context, question string) string
}

// BenchmarkRunner executes benchmark scenarios against a ready retriever
type BenchmarkRunner struct {
	retriever Retriever
	metrics   *MetricsCalculator
	logger    *zap.Logger
	out       io.Writer
	verbose   bool
}

// NewBenchmarkRunner creates a runner. Progress is written to out when verbose.
func NewBenchmarkRunner(retriever Retriever, out io.Writer, verbose bool, logger *zap.Logger) *BenchmarkRunner {
	if out == nil {
		out = io.Discard
	}
	return &BenchmarkRunner{
		retriever: retriever,
		metrics:   NewMetricsCalculator(),
		logger:    logging.OrNop(logger),
		out:       out,
		verbose:   verbose,
	}
}

// RunTest asks one scenario question and scores the outcome.
// Retrieval errors are recorded on the result as a FAIL rather than returned.
func (r *BenchmarkRunner) RunTest(ctx context.Context, scenario TestScenario) TestResult {
	if r.verbose {
		fmt.Fprintf(r.out, "\n========================================\n")
		fmt.Fprintf(r.out, "RUNNING: %s\n", scenario.Name)
		fmt.Fprintf(r.out, "========================================\n")
		fmt.Fprintf(r.out, "Question: %s\n\n", scenario.Question)
	}

	start := time.Now()
	result, err := r.retriever.Query(ctx, scenario.Question)
	if err != nil {
		r.logger.Warn("benchmark query failed", zap.String("test", scenario.ID), zap.Error(err))
		return TestResult{
			TestID:       scenario.ID,
			TestName:     scenario.Name,
			Status:       "FAIL",
			ErrorMessage: err.Error(),
		}
	}
	answer := r.retriever.GetContextForAgent(ctx, scenario.Question)

	scored := r.metrics.EvaluateTest(scenario, result, answer)
	scored.Details["latency_ms"] = time.Since(start).Milliseconds()

	r.logger.Debug("benchmark scored",
		zap.String("test", scenario.ID),
		zap.Float64("recall", scored.ContextRecallScore),
		zap.Float64("faithfulness", scored.FaithfulnessScore),
		zap.String("status", scored.Status))

	if r.verbose {
		fmt.Fprintf(r.out, "Faithfulness: %.2f\n", scored.FaithfulnessScore)
		fmt.Fprintf(r.out, "Context Recall: %.2f\n", scored.ContextRecallScore)
		fmt.Fprintf(r.out, "Page Hit: %t\n", scored.PageHit)
		fmt.Fprintf(r.out, "Status: %s\n", scored.Status)
	}

	return scored
}

// RunAllTests runs the scenarios in order, stopping early only if ctx is done
func (r *BenchmarkRunner) RunAllTests(ctx context.Context, scenarios []TestScenario) ([]TestResult, error) {
	results := make([]TestResult, 0, len(scenarios))
	for _, scenario := range scenarios {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, r.RunTest(ctx, scenario))
	}
	return results, nil
}

// Summary is the exported results document
type Summary struct {
	Timestamp  string       `json:"timestamp"`
	TotalTests int          `json:"total_tests"`
	Passed     int          `json:"passed"`
	Failed     int          `json:"failed"`
	Results    []TestResult `json:"results"`
}

// Summarize counts passes and failures
func Summarize(results []TestResult, now time.Time) Summary {
	summary := Summary{
		Timestamp:  now.Format(time.RFC3339),
		TotalTests: len(results),
		Results:    results,
	}
	for _, result := range results {
		if result.Status == "PASS" {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}
	return summary
}

// ExportResults writes the results summary as indented JSON
func (r *BenchmarkRunner) ExportResults(results []TestResult, outputPath string) error {
	jsonData, err := json.MarshalIndent(Summarize(results, time.Now()), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}

	r.logger.Info("benchmark results exported", zap.String("path", outputPath))
	return nil
}
