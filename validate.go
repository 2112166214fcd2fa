package main

import (
	"math"
	"strconv"
	"strings"
)

// validationError is one rejected field.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validationErrors collects every rejected field of a submission, in field
// declaration order. Never empty when returned as an error.
type validationErrors []validationError

func (v validationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "\n")
}

// parseInt parses a whole number in any decimal form, so "30", "30.0" and
// "3e1" are all 30. Fractions and trailing garbage are malformed.
func parseInt(f rawField) (int, bool) {
	x, ok := parseReal(f)
	if !ok || x != math.Trunc(x) || math.Abs(x) > math.MaxInt32 {
		return 0, false
	}
	return int(x), true
}

// parseReal parses a finite decimal number.
func parseReal(f rawField) (float64, bool) {
	x, err := strconv.ParseFloat(strings.TrimSpace(string(f)), 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false
	}
	return x, true
}

// validateProfile parses and range-checks a raw submission. Every field is
// checked, so the returned validationErrors lists all violations at once.
func validateProfile(raw rawProfile) (profile, error) {
	var p profile
	var errs validationErrors
	reject := func(field, msg string) {
		errs = append(errs, validationError{Field: field, Message: msg})
	}

	// Exact literal only; numeric fields tolerate surrounding spaces, gender does not.
	switch g := gender(raw.Gender); g {
	case genderMale, genderFemale:
		p.Gender = g
	default:
		reject("gender", "Please enter a valid gender: male or female")
	}

	if n, ok := parseInt(raw.Age); ok && n >= 10 && n <= 110 {
		p.Age = n
	} else {
		reject("age", "Please enter a valid age between 10 and 110.")
	}

	if n, ok := parseInt(raw.HeightFeet); ok && n >= 3 && n <= 9 {
		p.HeightFeet = n
	} else {
		reject("height_feet", "Please enter a valid height in feet (3 to 9).")
	}

	if n, ok := parseInt(raw.HeightInches); ok && n >= 0 && n <= 11 {
		p.HeightInches = n
	} else {
		reject("height_inches", "Please enter a valid height in inches (0 to 11).")
	}

	if x, ok := parseReal(raw.CurrentWeight); ok && x >= 75 && x <= 650 {
		p.CurrentWeightLBS = x
	} else {
		reject("current_weight", "Please enter a valid current weight between 75lbs and 650lbs.")
	}

	if x, ok := parseReal(raw.GoalWeight); ok && x >= 75 && x <= 650 {
		p.GoalWeightLBS = x
	} else {
		reject("goal_weight", "Please enter a valid goal weight between 75lbs and 650lbs.")
	}

	// Exact match only: 1.201 is not "close enough" to 1.2.
	if x, ok := parseReal(raw.ActivityFactor); ok && isActivityFactor(x) {
		p.ActivityFactor = x
	} else {
		reject("activity_factor", "Please enter a valid activity level.")
	}

	if len(errs) > 0 {
		return profile{}, errs
	}
	return p, nil
}

// inputFields returns the normalized submission keyed by field name, the
// shape the input store persists and the form restores from.
func (p profile) inputFields() map[string]string {
	return map[string]string{
		"gender":          string(p.Gender),
		"age":             strconv.Itoa(p.Age),
		"height_feet":     strconv.Itoa(p.HeightFeet),
		"height_inches":   strconv.Itoa(p.HeightInches),
		"current_weight":  strconv.FormatFloat(p.CurrentWeightLBS, 'f', -1, 64),
		"goal_weight":     strconv.FormatFloat(p.GoalWeightLBS, 'f', -1, 64),
		"activity_factor": strconv.FormatFloat(p.ActivityFactor, 'f', -1, 64),
	}
}
