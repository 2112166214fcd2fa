package main

import (
	"math"
	"math/big"
)

const (
	kgPerLB   = 0.453592
	cmPerFoot = 30.48
	cmPerInch = 2.54
)

// activityLevel is one selectable exercise-frequency option on the form.
type activityLevel struct {
	Name   string  `json:"name"`
	Label  string  `json:"label"`
	Factor float64 `json:"factor"`
}

// activityLevels lists the TDEE multipliers in form order. The validator
// accepts exactly these values and nothing in between.
var activityLevels = []activityLevel{
	{Name: "basal", Label: "Basal Metabolic Rate (BMR)", Factor: 1.0},
	{Name: "sedentary", Label: "Sedentary: little or no exercise", Factor: 1.2},
	{Name: "light", Label: "Light: exercise 1-3 times/week", Factor: 1.375},
	{Name: "moderate", Label: "Moderate: exercise 4-5 times/week", Factor: 1.465},
	{Name: "active", Label: "Active: daily exercise or intense exercise 3-4 times/week", Factor: 1.55},
	{Name: "very_active", Label: "Very Active: intense exercise 6-7 times/week", Factor: 1.725},
	{Name: "extra_active", Label: "Extra Active: very intense exercise daily, or physical job", Factor: 1.9},
}

// isActivityFactor reports whether f is exactly one of the enumerated factors.
func isActivityFactor(f float64) bool {
	for _, lvl := range activityLevels {
		if lvl.Factor == f {
			return true
		}
	}
	return false
}

// heightCM converts a feet/inches pair to centimetres.
func heightCM(feet, inches int) float64 {
	// Explicit conversions stop the compiler fusing multiply-adds.
	return float64(float64(feet)*cmPerFoot) + float64(float64(inches)*cmPerInch)
}

// computeBMR returns the Mifflin-St Jeor basal metabolic rate in kcal/day.
// Weight is in pounds and converted to kilograms; the result is not rounded.
func computeBMR(g gender, weightLBS, heightCM float64, age int) float64 {
	weightKG := weightLBS * kgPerLB
	bmr := float64(10*weightKG) + float64(6.25*heightCM) - float64(5*float64(age))
	if g == genderFemale {
		return bmr - 161
	}
	return bmr + 5
}

// computeTDEE scales BMR by the activity factor.
func computeTDEE(bmr, activityFactor float64) float64 {
	return bmr * activityFactor
}

// roundTo2 rounds x to two decimal places the way JavaScript's
// Number.prototype.toFixed(2) does: the exact binary value is rounded, ties
// away from zero. Ties such as 0.125 go up, not to even.
func roundTo2(x float64) float64 {
	// Past 1e13 the scaled value no longer fits the float64 mantissa.
	if math.IsNaN(x) || math.IsInf(x, 0) || math.Abs(x) >= 1e13 {
		return x
	}
	neg := x < 0
	scaled := new(big.Float).SetPrec(128).SetFloat64(math.Abs(x))
	scaled.Mul(scaled, big.NewFloat(100))
	scaled.Add(scaled, big.NewFloat(0.5))
	n, _ := scaled.Int(nil) // truncates, i.e. floor for positive values
	r := float64(n.Int64()) / 100
	if neg {
		return -r
	}
	return r
}
