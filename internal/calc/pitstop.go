// ABOUTME: Pit stop time loss against staying out at racing speed
// ABOUTME: Raw values are kept; Rounded gives display values to two decimals
package calc

import (
	"fmt"
	"strconv"
)

// RacingSpeedKmh is the reference speed a car would hold instead of pitting
const RacingSpeedKmh = 200.0

const kmhPerMetrePerSecond = 3.6

// PitStopResult is the time breakdown of one pit stop
type PitStopResult struct {
	LaneLengthM   float64 `json:"pit_lane_length_m"`
	SpeedLimitKmh float64 `json:"speed_limit_kmh"`
	LaneTime      float64 `json:"pit_lane_time_seconds"`
	TireChange    float64 `json:"tire_change_time_seconds"`
	Total         float64 `json:"total_pit_stop_time"`
	TimeLoss      float64 `json:"time_loss_vs_racing"`
	DistanceLostM float64 `json:"equivalent_distance_lost_m"`
}

// PitStopTimeLoss computes lane transit, total stop time and loss versus racing
func PitStopTimeLoss(laneLengthM, speedLimitKmh, tireChangeS float64) PitStopResult {
	laneSpeed := speedLimitKmh / kmhPerMetrePerSecond
	racingSpeed := RacingSpeedKmh / kmhPerMetrePerSecond

	laneTime := laneLengthM / laneSpeed
	total := laneTime + tireChangeS
	loss := total - laneLengthM/racingSpeed

	return PitStopResult{
		LaneLengthM:   laneLengthM,
		SpeedLimitKmh: speedLimitKmh,
		LaneTime:      laneTime,
		TireChange:    tireChangeS,
		Total:         total,
		TimeLoss:      loss,
		DistanceLostM: round(loss*racingSpeed, 0),
	}
}

// Rounded returns a copy with times rounded to two decimal places
func (r PitStopResult) Rounded() PitStopResult {
	r.LaneTime = round(r.LaneTime, 2)
	r.Total = round(r.Total, 2)
	r.TimeLoss = round(r.TimeLoss, 2)
	return r
}

// Summary renders the rounded breakdown for speech
func (r PitStopResult) Summary() string {
	d := r.Rounded()
	return fmt.Sprintf("Pit Stop Analysis:\nPit lane time: %s seconds\nTire change: %s seconds\nTotal pit stop time: %s seconds\nTime lost vs racing: %s seconds",
		formatFloat(d.LaneTime), formatFloat(d.TireChange), formatFloat(d.Total), formatFloat(d.TimeLoss))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
