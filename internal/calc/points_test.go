// ABOUTME: Tests for race points and points swing calculations
// ABOUTME: Covers both points tables, the fastest lap bonus and swing labelling
package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRacePoints(t *testing.T) {
	tests := []struct {
		name       string
		position   int
		fastestLap bool
		sprint     bool
		want       int
	}{
		{"win", 1, false, false, 25},
		{"win with fastest lap", 1, true, false, 26},
		{"tenth", 10, false, false, 1},
		{"tenth with fastest lap", 10, true, false, 2},
		{"outside the points", 11, false, false, 0},
		{"fastest lap outside top ten", 11, true, false, 0},
		{"sprint win", 1, false, true, 8},
		{"sprint eighth", 8, false, true, 1},
		{"sprint ninth", 9, false, true, 0},
		{"no fastest lap bonus in sprints", 1, true, true, 8},
		{"position zero", 0, false, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RacePoints(tt.position, tt.fastestLap, tt.sprint))
		})
	}
}

func TestPointsSwing(t *testing.T) {
	r := PointsSwing(2, false, 5, false)
	assert.Equal(t, 18, r.Driver1Points)
	assert.Equal(t, 10, r.Driver2Points)
	assert.Equal(t, 8, r.Swing)
	assert.Equal(t, AdvantageDriver1, r.Advantage)

	r = PointsSwing(5, false, 1, true)
	assert.Equal(t, -16, r.Swing)
	assert.Equal(t, AdvantageDriver2, r.Advantage)

	r = PointsSwing(12, false, 15, false)
	assert.Equal(t, 0, r.Swing)
	assert.Equal(t, AdvantageEqual, r.Advantage)
}

func TestSwingResult_Summary(t *testing.T) {
	got := PointsSwing(5, false, 1, true).Summary()
	assert.Equal(t, "Points Analysis:\nDriver 1 (P5): 10 points\nDriver 2 (P1): 26 points\nPoints swing: 16 points in favor of Driver 2", got)

	assert.Contains(t, PointsSwing(3, false, 3, false).Summary(), "both drivers score the same")
}
