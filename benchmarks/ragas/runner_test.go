// ABOUTME: Tests for the benchmark runner against a stub retriever
// ABOUTME: Verifies scoring, error capture, cancellation and JSON export

package ragas

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/race-engineer/internal/core"
	"github.com/harper/race-engineer/internal/models"
)

type stubRetriever struct {
	result *models.QueryResult
	err    error
	asked  []string
}

func (s *stubRetriever) Query(ctx context.Context, question string) (*models.QueryResult, error) {
	s.asked = append(s.asked, question)
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubRetriever) GetContextForAgent(ctx context.Context, question string) string {
	if s.err != nil {
		return core.ErrorTextPrefix + s.err.Error()
	}
	return "Relevant FIA Regulations:\n\n" + core.FormatContext(s.result.Sources)
}

func TestRunTest(t *testing.T) {
	stub := &stubRetriever{result: &models.QueryResult{Sources: sources(12), NumSources: 1}}
	var out bytes.Buffer
	runner := NewBenchmarkRunner(stub, &out, true, nil)

	got := runner.RunTest(context.Background(), GetPitLaneSpeed())

	assert.Equal(t, "PASS", got.Status)
	assert.Equal(t, []string{GetPitLaneSpeed().Question}, stub.asked)
	assert.Contains(t, got.Details, "latency_ms")
	assert.Contains(t, out.String(), "RUNNING: Pit Lane Speed Limit")
	assert.Contains(t, out.String(), "Status: PASS")
}

func TestRunTest_QueryError(t *testing.T) {
	stub := &stubRetriever{err: errors.New("provider down")}
	runner := NewBenchmarkRunner(stub, nil, false, nil)

	got := runner.RunTest(context.Background(), GetTyreCompounds())
	assert.Equal(t, "FAIL", got.Status)
	assert.Equal(t, "provider down", got.ErrorMessage)
}

func TestRunAllTests(t *testing.T) {
	stub := &stubRetriever{result: &models.QueryResult{Sources: sources(12, 30, 41), NumSources: 3}}
	runner := NewBenchmarkRunner(stub, nil, false, nil)

	results, err := runner.RunAllTests(context.Background(), GetAllTests())
	require.NoError(t, err)
	require.Len(t, results, len(GetAllTests()))

	byID := map[string]string{}
	for _, r := range results {
		byID[r.TestID] = r.Status
	}
	assert.Equal(t, "PASS", byID["pit_lane"])
	assert.Equal(t, "PASS", byID["tyres"])
	assert.Equal(t, "PASS", byID["parc_ferme"])
	// No source mentions the safety car
	assert.Equal(t, "FAIL", byID["safety_car"])
}

func TestRunAllTests_Cancelled(t *testing.T) {
	stub := &stubRetriever{result: &models.QueryResult{}}
	runner := NewBenchmarkRunner(stub, nil, false, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := runner.RunAllTests(ctx, GetAllTests())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
	assert.Empty(t, stub.asked)
}

func TestExportResults(t *testing.T) {
	runner := NewBenchmarkRunner(&stubRetriever{}, nil, false, nil)
	results := []TestResult{
		{TestID: "a", Status: "PASS"},
		{TestID: "b", Status: "FAIL", ErrorMessage: "boom"},
	}
	path := filepath.Join(t.TempDir(), "results.json")

	require.NoError(t, runner.ExportResults(results, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var summary Summary
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, 2, summary.TotalTests)
	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, "boom", summary.Results[1].ErrorMessage)
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 3, 8, 15, 0, 0, 0, time.UTC)
	summary := Summarize(nil, now)
	assert.Equal(t, "2026-03-08T15:00:00Z", summary.Timestamp)
	assert.Zero(t, summary.TotalTests)
}

func TestGetTest(t *testing.T) {
	for _, id := range TestIDs() {
		scenario, ok := GetTest(id)
		assert.True(t, ok, id)
		assert.NotEmpty(t, scenario.Question)
		assert.NotEmpty(t, scenario.GroundTruth.ExpectedContextItems)
	}
	_, ok := GetTest("7a")
	assert.False(t, ok)
}
