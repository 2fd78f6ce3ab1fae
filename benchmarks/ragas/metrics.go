// ABOUTME: RAGAS-style metrics for regulation retrieval: faithfulness, context recall, page hit
// ABOUTME: Deterministic scoring against phrase and page ground truth, no judge model involved

package ragas

import (
	"fmt"
	"slices"
	"strings"

	"github.com/harper/race-engineer/internal/models"
)

// PassThreshold is the minimum faithfulness and recall for a PASS
const PassThreshold = 0.9

// MetricsCalculator computes scores for benchmark scenarios
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateFaithfulness scores the agent answer (0.0-1.0).
// 1.0 needs every expected phrase and no forbidden phrase.
func (m *MetricsCalculator) CalculateFaithfulness(
	response string,
	expectedInResponse []string,
	forbiddenInResponse []string,
) (float64, string) {
	missing := missingPhrases(response, expectedInResponse)

	forbiddenFound := []string{}
	responseUpper := strings.ToUpper(response)
	for _, forbidden := range forbiddenInResponse {
		if strings.Contains(responseUpper, strings.ToUpper(forbidden)) {
			forbiddenFound = append(forbiddenFound, forbidden)
		}
	}

	switch {
	case len(missing) == 0 && len(forbiddenFound) == 0:
		return 1.0, "Answer carries every expected phrase"
	case len(missing) > 0 && len(forbiddenFound) > 0:
		return 0.0, fmt.Sprintf(
			"Faithfulness failure - missing expected items: %v, forbidden items found: %v",
			missing, forbiddenFound,
		)
	case len(missing) > 0:
		return 0.5, fmt.Sprintf("Partial faithfulness - missing expected items: %v", missing)
	default:
		return 0.5, fmt.Sprintf("Partial faithfulness - forbidden items found: %v", forbiddenFound)
	}
}

// CalculateContextRecall is the share of expected phrases found across the sources
func (m *MetricsCalculator) CalculateContextRecall(
	sources []models.SearchResult,
	expectedContextItems []string,
) (float64, string) {
	if len(expectedContextItems) == 0 {
		return 1.0, "No context retrieval required"
	}

	texts := make([]string, len(sources))
	for i, s := range sources {
		texts[i] = s.Text
	}
	missing := missingPhrases(strings.Join(texts, " "), expectedContextItems)

	recall := float64(len(expectedContextItems)-len(missing)) / float64(len(expectedContextItems))
	if len(missing) == 0 {
		return 1.0, "Perfect context recall - all expected items retrieved"
	}
	return recall, fmt.Sprintf("Partial context recall (%.2f) - missing items: %v", recall, missing)
}

// CalculatePageHit reports whether any source cites one of the expected pages
func (m *MetricsCalculator) CalculatePageHit(sources []models.SearchResult, expectedPages []int) (bool, string) {
	if len(expectedPages) == 0 {
		return true, "No page expectation"
	}
	for _, s := range sources {
		if slices.Contains(expectedPages, s.Page) {
			return true, fmt.Sprintf("Cited expected page %d", s.Page)
		}
	}
	return false, fmt.Sprintf("None of pages %v cited", expectedPages)
}

// EvaluateTest scores one scenario from its retrieval and agent answer
func (m *MetricsCalculator) EvaluateTest(
	scenario TestScenario,
	result *models.QueryResult,
	answer string,
) TestResult {
	var sources []models.SearchResult
	if result != nil {
		sources = result.Sources
	}

	faithfulness, faithfulnessDetail := m.CalculateFaithfulness(
		answer,
		scenario.GroundTruth.ExpectedInResponse,
		scenario.GroundTruth.ForbiddenInResponse,
	)
	recall, recallDetail := m.CalculateContextRecall(sources, scenario.GroundTruth.ExpectedContextItems)
	pageHit, pageDetail := m.CalculatePageHit(sources, scenario.GroundTruth.ExpectedPages)

	status := "FAIL"
	if faithfulness >= PassThreshold && recall >= PassThreshold && pageHit {
		status = "PASS"
	}

	pages := make([]int, len(sources))
	for i, s := range sources {
		pages[i] = s.Page
	}

	return TestResult{
		TestID:             scenario.ID,
		TestName:           scenario.Name,
		FaithfulnessScore:  faithfulness,
		ContextRecallScore: recall,
		PageHit:            pageHit,
		OverallScore:       (faithfulness + recall) / 2.0,
		Status:             status,
		Details: map[string]any{
			"faithfulness_detail": faithfulnessDetail,
			"recall_detail":       recallDetail,
			"page_detail":         pageDetail,
			"pages":               pages,
			"answer":              answer[:min(200, len(answer))],
		},
	}
}

func missingPhrases(text string, phrases []string) []string {
	upper := strings.ToUpper(text)
	missing := []string{}
	for _, phrase := range phrases {
		if !strings.Contains(upper, strings.ToUpper(phrase)) {
			missing = append(missing, phrase)
		}
	}
	return missing
}
