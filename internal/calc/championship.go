// ABOUTME: Championship scenario between a leader and a chaser
// ABOUTME: Works out whether the title is still open with the events remaining
package calc

import (
	"fmt"
	"math"
	"strings"
)

const (
	// MaxPointsPerRace is a win plus the fastest lap bonus
	MaxPointsPerRace = 25 + FastestLapPoints
	// MaxPointsPerSprint is a sprint win
	MaxPointsPerSprint = 8
	// runnerUpRace and runnerUpSprint are second place in each format
	runnerUpRace   = 18
	runnerUpSprint = 7
)

// Scenario is one spoken outcome of a championship calculation
type Scenario struct {
	Name      string `json:"scenario"`
	Outcome   string `json:"outcome"`
	Condition string `json:"condition"`
}

// ChampionshipResult is the breakdown for two drivers with events remaining
type ChampionshipResult struct {
	Driver1Points  int `json:"driver1_points"`
	Driver2Points  int `json:"driver2_points"`
	RacesRemaining int `json:"races_remaining"`
	SprintRaces    int `json:"sprint_races"`

	Gap                 int     `json:"current_gap"`
	Leader              string  `json:"leader"`
	Chaser              string  `json:"chaser"`
	MaxAvailable        int     `json:"maximum_points_available"`
	Possible            bool    `json:"mathematically_possible"`
	PointsNeeded        int     `json:"points_chaser_needs"`
	AveragePerRace      float64 `json:"average_points_per_race_needed"`
	LeaderCurrent       int     `json:"leader_current"`
	ChaserCurrent       int     `json:"chaser_current"`
	ChaserBestCase      int     `json:"chaser_best_case_total"`
	ChaserRunnerUpTotal int     `json:"chaser_runner_up_total"`
	LeaderMaxPossible   int     `json:"leader_max_possible"`

	// LeaderThreshold is what the leader must score fewer than for the chaser,
	// winning everything, to finish ahead. Only meaningful when Possible.
	LeaderThreshold int `json:"leader_threshold"`

	Scenario Scenario `json:"scenario"`
}

// ChampionshipScenario works out whether the chaser can still win the title.
// Inputs are not validated; negative values give well-defined but odd answers.
func ChampionshipScenario(p1, p2, racesRemaining, sprintRaces int) ChampionshipResult {
	maxAvailable := racesRemaining*MaxPointsPerRace + sprintRaces*MaxPointsPerSprint
	gap := abs(p1 - p2)

	leader, chaser := AdvantageDriver2, AdvantageDriver1
	leaderCurrent, chaserCurrent := p2, p1
	if p1 > p2 {
		leader, chaser = AdvantageDriver1, AdvantageDriver2
		leaderCurrent, chaserCurrent = p1, p2
	}

	pointsNeeded := gap + 1
	var average float64
	if racesRemaining > 0 {
		average = round(float64(pointsNeeded)/float64(racesRemaining), 1)
	}

	r := ChampionshipResult{
		Driver1Points:       p1,
		Driver2Points:       p2,
		RacesRemaining:      racesRemaining,
		SprintRaces:         sprintRaces,
		Gap:                 gap,
		Leader:              leader,
		Chaser:              chaser,
		MaxAvailable:        maxAvailable,
		Possible:            gap <= maxAvailable,
		PointsNeeded:        pointsNeeded,
		AveragePerRace:      average,
		LeaderCurrent:       leaderCurrent,
		ChaserCurrent:       chaserCurrent,
		ChaserBestCase:      chaserCurrent + maxAvailable,
		ChaserRunnerUpTotal: chaserCurrent + racesRemaining*runnerUpRace + sprintRaces*runnerUpSprint,
		LeaderMaxPossible:   leaderCurrent + maxAvailable,
	}
	r.LeaderThreshold = r.ChaserBestCase - leaderCurrent

	if r.Possible {
		r.Scenario = Scenario{
			Name:      "Chaser wins all remaining races",
			Outcome:   "Championship possible",
			Condition: fmt.Sprintf("Leader must score fewer than %d points total", r.LeaderThreshold),
		}
	} else {
		r.Scenario = Scenario{
			Name:      "Championship decided",
			Outcome:   "Mathematically impossible for chaser to win",
			Condition: fmt.Sprintf("Gap of %d points exceeds maximum available %d", gap, maxAvailable),
		}
	}
	return r
}

// Summary renders the scenario for speech
func (r ChampionshipResult) Summary() string {
	var b strings.Builder
	b.WriteString("Championship Analysis:\n")
	fmt.Fprintf(&b, "Current gap: %d points\n", r.Gap)
	fmt.Fprintf(&b, "Races remaining: %d\n", r.RacesRemaining)
	if r.SprintRaces > 0 {
		fmt.Fprintf(&b, "Sprint races remaining: %d\n", r.SprintRaces)
	}
	fmt.Fprintf(&b, "Maximum points available: %d\n\n", r.MaxAvailable)
	fmt.Fprintf(&b, "%s: %s\n%s\n\n", r.Scenario.Name, r.Scenario.Outcome, r.Scenario.Condition)

	status := "already decided"
	if r.Possible {
		status = "still possible"
	}
	fmt.Fprintf(&b, "The championship is %s.", status)
	return b.String()
}

// round rounds half away from zero to the given number of decimal places
func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
