// ABOUTME: CLI commands for race calculations
// ABOUTME: points, swing, championship and pitstop print a spoken summary or JSON
package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harper/race-engineer/internal/calc"
)

var (
	calcFastestLap  bool
	calcSprint      bool
	calcFastestLap1 bool
	calcFastestLap2 bool
	calcSprintRaces int
	calcTireChangeS float64
)

// NewCalcCmd creates the calc command and its subcommands
func NewCalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Race points, championship and pit stop calculations",
		Long: `Race points, championship and pit stop calculations.

These work offline and never touch the regulations index.

Examples:
  engineer calc points 1 --fastest-lap
  engineer calc swing 2 5
  engineer calc championship 400 350 3 --sprints 1
  engineer calc pitstop 255 80 --tire-change 2.5`,
	}

	cmd.AddCommand(
		newCalcPointsCmd(),
		newCalcSwingCmd(),
		newCalcChampionshipCmd(),
		newCalcPitStopCmd(),
	)

	return cmd
}

func newCalcPointsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "points <position>",
		Short: "Points for a finishing position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := parseIntArg(args[0], "position")
			if err != nil {
				return err
			}
			points := calc.RacePoints(position, calcFastestLap, calcSprint)

			if jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"position":    position,
					"fastest_lap": calcFastestLap,
					"sprint":      calcSprint,
					"points":      points,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "P%d: %d points\n", position, points)
			return nil
		},
	}

	cmd.Flags().BoolVar(&calcFastestLap, "fastest-lap", false, "Driver set the fastest lap")
	cmd.Flags().BoolVar(&calcSprint, "sprint", false, "Use the sprint points table")

	return cmd
}

func newCalcSwingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swing <driver1-position> <driver2-position>",
		Short: "Points swing between two drivers in one race",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos1, err := parseIntArg(args[0], "driver1-position")
			if err != nil {
				return err
			}
			pos2, err := parseIntArg(args[1], "driver2-position")
			if err != nil {
				return err
			}
			result := calc.PointsSwing(pos1, calcFastestLap1, pos2, calcFastestLap2)
			return writeResult(cmd.OutOrStdout(), result, result.Summary())
		},
	}

	cmd.Flags().BoolVar(&calcFastestLap1, "fl1", false, "Driver 1 set the fastest lap")
	cmd.Flags().BoolVar(&calcFastestLap2, "fl2", false, "Driver 2 set the fastest lap")

	return cmd
}

func newCalcChampionshipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "championship <driver1-points> <driver2-points> <races-remaining>",
		Short: "Whether the title is still mathematically open",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p1, err := parseIntArg(args[0], "driver1-points")
			if err != nil {
				return err
			}
			p2, err := parseIntArg(args[1], "driver2-points")
			if err != nil {
				return err
			}
			races, err := parseIntArg(args[2], "races-remaining")
			if err != nil {
				return err
			}
			result := calc.ChampionshipScenario(p1, p2, races, calcSprintRaces)
			return writeResult(cmd.OutOrStdout(), result, result.Summary())
		},
	}

	cmd.Flags().IntVar(&calcSprintRaces, "sprints", 0, "Sprint races remaining")

	return cmd
}

func newCalcPitStopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pitstop <pit-lane-length-m> <speed-limit-kmh>",
		Short: "Time lost to a pit stop",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			length, err := parseFloatArg(args[0], "pit-lane-length-m")
			if err != nil {
				return err
			}
			limit, err := parseFloatArg(args[1], "speed-limit-kmh")
			if err != nil {
				return err
			}
			if limit <= 0 {
				return fmt.Errorf("speed-limit-kmh must be greater than zero, got %v", limit)
			}
			result := calc.PitStopTimeLoss(length, limit, calcTireChangeS)
			return writeResult(cmd.OutOrStdout(), result.Rounded(), result.Summary())
		},
	}

	cmd.Flags().Float64Var(&calcTireChangeS, "tire-change", 2.5, "Stationary time in seconds")

	return cmd
}

// writeResult prints JSON or the spoken summary depending on --format
func writeResult(w io.Writer, result any, summary string) error {
	if jsonOutput() {
		return writeJSON(w, result)
	}
	fmt.Fprintln(w, summary)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Fprintf(w, "%s\n", jsonData)
	return nil
}
