package main

import (
	"errors"
	"fmt"
	"math"
)

const (
	// calorieOffset is the fixed daily deficit or surplus against current TDEE.
	calorieOffset = 1000
	// caloriesPerLB is the model's energy content of one pound of body weight.
	caloriesPerLB = 3500
	// defaultMaxWeeks bounds the weekly loop. The widest valid range
	// (650 → 75 lbs at ~2 lbs/week) needs under 300 weeks.
	defaultMaxWeeks = 1000
)

// ErrNonConvergence is returned when the goal is not reached within the
// projector's week cap.
var ErrNonConvergence = errors.New("projection did not converge")

// projector simulates week-by-week weight change. The zero value uses
// defaultMaxWeeks.
type projector struct {
	maxWeeks int
}

// project computes goal stats and the weekly records for a validated profile.
// Current weight at or above goal runs in deficit mode, below goal in surplus
// mode. Weight is re-rounded to two decimals every week and that rounded
// value drives the next week's BMR.
func (pj projector) project(p profile) (projectionResult, error) {
	maxWeeks := pj.maxWeeks
	if maxWeeks <= 0 {
		maxWeeks = defaultMaxWeeks
	}

	cm := heightCM(p.HeightFeet, p.HeightInches)
	goalBMR := computeBMR(p.Gender, p.GoalWeightLBS, cm, p.Age)
	res := projectionResult{
		Mode: modeSurplus,
		GoalStats: goalStats{
			GoalBMR:  goalBMR,
			GoalTDEE: computeTDEE(goalBMR, p.ActivityFactor),
		},
		Records: []weeklyRecord{},
	}
	if p.CurrentWeightLBS >= p.GoalWeightLBS {
		res.Mode = modeDeficit
	}

	// Whole-pound comparison in the direction of travel. A week that steps
	// past the goal's whole pound still ends the loop.
	goalFloor := math.Floor(p.GoalWeightLBS)
	reached := func(w float64) bool {
		if res.Mode == modeDeficit {
			return math.Floor(w) <= goalFloor
		}
		return math.Floor(w) >= goalFloor
	}

	weight := p.CurrentWeightLBS
	for week := 1; !reached(weight); week++ {
		if week > maxWeeks {
			return projectionResult{}, fmt.Errorf("%w: %.2f lbs not reached from %.2f lbs within %d weeks",
				ErrNonConvergence, p.GoalWeightLBS, p.CurrentWeightLBS, maxWeeks)
		}

		currentTDEE := computeTDEE(computeBMR(p.Gender, weight, cm, p.Age), p.ActivityFactor)

		// Flooring the target biases toward a slightly larger deficit and
		// a slightly smaller surplus than the nominal offset.
		var target, daily float64
		if res.Mode == modeDeficit {
			target = math.Floor(currentTDEE - calorieOffset)
			daily = currentTDEE - target
		} else {
			target = math.Floor(currentTDEE + calorieOffset)
			daily = target - currentTDEE
		}

		delta := roundTo2(daily*7) / caloriesPerLB
		if res.Mode == modeDeficit {
			weight = roundTo2(weight - delta)
		} else {
			weight = roundTo2(weight + delta)
		}

		res.Records = append(res.Records, weeklyRecord{
			Week:                week,
			WeightLBS:           weight,
			RecommendedCalories: int(target),
		})
	}

	return res, nil
}
