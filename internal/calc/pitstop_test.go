// ABOUTME: Tests for pit stop time loss calculations
// ABOUTME: Checks raw and rounded values and the spoken summary
package calc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPitStopTimeLoss(t *testing.T) {
	r := PitStopTimeLoss(255, 80, 2.5)

	assert.InDelta(t, 11.475, r.LaneTime, 1e-9)
	assert.InDelta(t, 13.975, r.Total, 1e-9)
	assert.InDelta(t, 9.385, r.TimeLoss, 1e-9)
	assert.Equal(t, 521.0, r.DistanceLostM)

	d := r.Rounded()
	assert.Equal(t, 11.48, d.LaneTime)
	assert.Equal(t, 13.98, d.Total)
	assert.Equal(t, 9.39, d.TimeLoss)
	assert.Equal(t, 2.5, d.TireChange)
	assert.InDelta(t, 11.475, r.LaneTime, 1e-9, "Rounded must not modify the receiver")
}

func TestPitStopTimeLoss_Slower(t *testing.T) {
	r := PitStopTimeLoss(360, 60, 3)

	assert.InDelta(t, 21.6, r.LaneTime, 1e-9)
	assert.InDelta(t, 24.6, r.Total, 1e-9)
	assert.InDelta(t, 24.6-6.48, r.TimeLoss, 1e-9)

	d := r.Rounded()
	assert.Equal(t, 21.6, d.LaneTime)
	assert.Equal(t, 24.6, d.Total)
	assert.Equal(t, 18.12, d.TimeLoss)
}

func TestPitStopResult_Summary(t *testing.T) {
	got := PitStopTimeLoss(360, 60, 3).Summary()

	assert.True(t, strings.HasPrefix(got, "Pit Stop Analysis:\n"))
	assert.Contains(t, got, "Pit lane time: 21.6 seconds\n")
	assert.Contains(t, got, "Tire change: 3 seconds\n")
	assert.Contains(t, got, "Total pit stop time: 24.6 seconds\n")
	assert.Contains(t, got, "Time lost vs racing: 18.12 seconds")
}
