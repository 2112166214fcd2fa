package main

import (
	"bytes"
	"encoding/json"
)

// gender is the Mifflin-St Jeor sex constant selector.
type gender string

const (
	genderMale   gender = "male"
	genderFemale gender = "female"
)

// projectionMode is the direction of travel toward the goal weight.
type projectionMode string

const (
	modeDeficit projectionMode = "deficit"
	modeSurplus projectionMode = "surplus"
)

// rawField holds one form value as text. It unmarshals from either a JSON
// string or a bare JSON number so clients can post `"age": 30` or
// `"age": "30"`; null leaves it empty.
type rawField string

func (f *rawField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = rawField(s)
		return nil
	}
	*f = rawField(b)
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// rawProfile is the unvalidated submission from the input source. Field
// names double as the input store keys.
type rawProfile struct {
	Gender         rawField `json:"gender"`
	Age            rawField `json:"age"`
	HeightFeet     rawField `json:"height_feet"`
	HeightInches   rawField `json:"height_inches"`
	CurrentWeight  rawField `json:"current_weight"`
	GoalWeight     rawField `json:"goal_weight"`
	ActivityFactor rawField `json:"activity_factor"`
}

// profile is a range-checked submission. Constructed only by validateProfile.
type profile struct {
	Gender           gender
	Age              int
	HeightFeet       int
	HeightInches     int
	CurrentWeightLBS float64
	GoalWeightLBS    float64
	ActivityFactor   float64
}

// goalStats is BMR/TDEE evaluated at the goal weight. Reported only; the
// weekly loop never reads it.
type goalStats struct {
	GoalBMR  float64 `json:"goal_bmr"`
	GoalTDEE float64 `json:"goal_tdee"`
}

// weeklyRecord is one simulated week.
type weeklyRecord struct {
	Week                int     `json:"week"`
	WeightLBS           float64 `json:"weight_lbs"`
	RecommendedCalories int     `json:"recommended_calories"`
}

// projectionResult is the engine's sole product. Records are in week order
// and never nil.
type projectionResult struct {
	Mode      projectionMode `json:"mode"`
	GoalStats goalStats      `json:"goal_stats"`
	Records   []weeklyRecord `json:"records"`
}

/* ─── Rendering shapes ───────────────────────────────────────────────── */

// chartDataset is a single Chart.js line series.
type chartDataset struct {
	Label       string    `json:"label"`
	Data        []float64 `json:"data"`
	BorderWidth int       `json:"borderWidth"`
}

// chartData is the Chart.js data block.
type chartData struct {
	Labels   []string       `json:"labels"`
	Datasets []chartDataset `json:"datasets"`
}

// chartConfig is the response shape for GET /api/projection/chart. It is fed
// directly to `new Chart(ctx, config)` on the page.
type chartConfig struct {
	Type string    `json:"type"`
	Data chartData `json:"data"`
}

// tableRow is one row of GET /api/projection/table.
type tableRow struct {
	Week                int    `json:"week"`
	Weight              string `json:"weight"`
	RecommendedCalories int    `json:"recommended_calories"`
}
