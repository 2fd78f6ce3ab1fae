// ABOUTME: Points tables and single-race calculations for drivers
// ABOUTME: RacePoints scores one finish; PointsSwing compares two finishes
package calc

import "fmt"

// FastestLapPoints is the bonus for the fastest lap in a race
const FastestLapPoints = 1

// RaceTable holds grand prix points for positions 1 to 10
var RaceTable = []int{25, 18, 15, 12, 10, 8, 6, 4, 2, 1}

// SprintTable holds sprint points for positions 1 to 8
var SprintTable = []int{8, 7, 6, 5, 4, 3, 2, 1}

const (
	AdvantageDriver1 = "Driver 1"
	AdvantageDriver2 = "Driver 2"
	AdvantageEqual   = "Equal"
)

// RacePoints returns the points for a finishing position.
// The fastest lap bonus only applies to grand prix finishes inside the top ten.
func RacePoints(position int, fastestLap, sprint bool) int {
	if sprint {
		return tableLookup(SprintTable, position)
	}

	points := tableLookup(RaceTable, position)
	if fastestLap && position <= len(RaceTable) {
		points += FastestLapPoints
	}
	return points
}

func tableLookup(table []int, position int) int {
	if position < 1 || position > len(table) {
		return 0
	}
	return table[position-1]
}

// SwingResult compares two drivers' points from the same race
type SwingResult struct {
	Driver1Position int    `json:"driver1_position"`
	Driver2Position int    `json:"driver2_position"`
	Driver1Points   int    `json:"driver1_points"`
	Driver2Points   int    `json:"driver2_points"`
	Swing           int    `json:"points_swing"`
	Advantage       string `json:"advantage"`
}

// PointsSwing scores two grand prix finishes and returns the signed difference
func PointsSwing(pos1 int, fastestLap1 bool, pos2 int, fastestLap2 bool) SwingResult {
	d1 := RacePoints(pos1, fastestLap1, false)
	d2 := RacePoints(pos2, fastestLap2, false)
	swing := d1 - d2

	advantage := AdvantageEqual
	switch {
	case swing > 0:
		advantage = AdvantageDriver1
	case swing < 0:
		advantage = AdvantageDriver2
	}

	return SwingResult{
		Driver1Position: pos1,
		Driver2Position: pos2,
		Driver1Points:   d1,
		Driver2Points:   d2,
		Swing:           swing,
		Advantage:       advantage,
	}
}

// Summary renders the swing for speech
func (r SwingResult) Summary() string {
	last := fmt.Sprintf("Points swing: %d points in favor of %s", abs(r.Swing), r.Advantage)
	if r.Advantage == AdvantageEqual {
		last = "Points swing: 0 points, both drivers score the same"
	}
	return fmt.Sprintf("Points Analysis:\nDriver 1 (P%d): %d points\nDriver 2 (P%d): %d points\n%s",
		r.Driver1Position, r.Driver1Points, r.Driver2Position, r.Driver2Points, last)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
