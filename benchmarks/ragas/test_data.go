// ABOUTME: Benchmark scenarios for regulation retrieval quality
// ABOUTME: Each scenario is a race engineer question with the text the retrieved context must carry

package ragas

// TestScenario is one regulation question asked against the index
type TestScenario struct {
	ID          string
	Name        string
	Description string
	Question    string
	GroundTruth GroundTruth
}

// GroundTruth defines what a good retrieval looks like for a scenario
type GroundTruth struct {
	// Phrases that must appear somewhere in the retrieved sources
	ExpectedContextItems []string

	// Phrases that must (or must not) appear in the agent-facing answer
	ExpectedInResponse  []string
	ForbiddenInResponse []string

	// Pages that should be cited. Empty means any page is acceptable.
	ExpectedPages []int
}

// TestResult is the outcome of one scenario
type TestResult struct {
	TestID             string         `json:"test_id"`
	TestName           string         `json:"test_name"`
	FaithfulnessScore  float64        `json:"faithfulness"`
	ContextRecallScore float64        `json:"context_recall"`
	PageHit            bool           `json:"page_hit"`
	OverallScore       float64        `json:"overall"`
	Status             string         `json:"status"` // "PASS" or "FAIL"
	Details            map[string]any `json:"details,omitempty"`
	ErrorMessage       string         `json:"error,omitempty"`
}

// GetPitLaneSpeed asks for the pit lane speed limit
func GetPitLaneSpeed() TestScenario {
	return TestScenario{
		ID:          "pit_lane",
		Name:        "Pit Lane Speed Limit",
		Description: "The speed limit article must be retrieved when asked about the pit lane",
		Question:    "What is the speed limit in the pit lane?",
		GroundTruth: GroundTruth{
			ExpectedContextItems: []string{"pit lane", "km/h"},
			ExpectedInResponse:   []string{"[Source: Page"},
			ForbiddenInResponse:  []string{"No relevant information found"},
		},
	}
}

// GetTyreCompounds asks about the dry compound obligation
func GetTyreCompounds() TestScenario {
	return TestScenario{
		ID:          "tyres",
		Name:        "Dry Tyre Compounds",
		Description: "Questions about compound usage must surface the tyre articles",
		Question:    "How many different dry tyre compounds must a driver use during the race?",
		GroundTruth: GroundTruth{
			ExpectedContextItems: []string{"compound", "dry"},
			ExpectedInResponse:   []string{"[Source: Page"},
			ForbiddenInResponse:  []string{"No relevant information found"},
		},
	}
}

// GetParcFerme asks about parc fermé conditions
func GetParcFerme() TestScenario {
	return TestScenario{
		ID:          "parc_ferme",
		Name:        "Parc Fermé",
		Description: "Parc fermé questions must retrieve the parc fermé conditions",
		Question:    "When do parc ferme conditions apply to the cars?",
		GroundTruth: GroundTruth{
			ExpectedContextItems: []string{"parc ferm"},
			ExpectedInResponse:   []string{"[Source: Page"},
			ForbiddenInResponse:  []string{"No relevant information found"},
		},
	}
}

// GetSafetyCar asks about overtaking behind the safety car
func GetSafetyCar() TestScenario {
	return TestScenario{
		ID:          "safety_car",
		Name:        "Safety Car Procedure",
		Description: "Safety car questions must retrieve the safety car procedure",
		Question:    "Can drivers overtake while the safety car is deployed?",
		GroundTruth: GroundTruth{
			ExpectedContextItems: []string{"safety car", "overtak"},
			ExpectedInResponse:   []string{"[Source: Page"},
			ForbiddenInResponse:  []string{"No relevant information found"},
		},
	}
}

// GetAllTests returns every built-in scenario in run order
func GetAllTests() []TestScenario {
	return []TestScenario{
		GetPitLaneSpeed(),
		GetTyreCompounds(),
		GetParcFerme(),
		GetSafetyCar(),
	}
}

// GetTest returns the built-in scenario with the given ID
func GetTest(id string) (TestScenario, bool) {
	for _, scenario := range GetAllTests() {
		if scenario.ID == id {
			return scenario, true
		}
	}
	return TestScenario{}, false
}

// TestIDs lists the built-in scenario IDs
func TestIDs() []string {
	scenarios := GetAllTests()
	ids := make([]string, 0, len(scenarios))
	for _, scenario := range scenarios {
		ids = append(ids, scenario.ID)
	}
	return ids
}
