package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// makeRaw returns a valid raw submission: male, 30, 5'10", 200 → 180 lbs, 1.55.
// Tests overwrite individual fields to exercise each check.
func makeRaw() rawProfile {
	return rawProfile{
		Gender:         "male",
		Age:            "30",
		HeightFeet:     "5",
		HeightInches:   "10",
		CurrentWeight:  "200",
		GoalWeight:     "180",
		ActivityFactor: "1.55",
	}
}

func TestValidateProfile_Valid(t *testing.T) {
	p, err := validateProfile(makeRaw())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := profile{
		Gender:           genderMale,
		Age:              30,
		HeightFeet:       5,
		HeightInches:     10,
		CurrentWeightLBS: 200,
		GoalWeightLBS:    180,
		ActivityFactor:   1.55,
	}
	if p != want {
		t.Errorf("profile = %+v, want %+v", p, want)
	}
}

// TestValidateProfile_Bounds verifies closed ranges: both ends accepted, one
// step outside rejected with the field's message.
func TestValidateProfile_Bounds(t *testing.T) {
	cases := []struct {
		name  string
		mutFn func(r *rawProfile)
		field string // empty when the value is valid
	}{
		{"age min", func(r *rawProfile) { r.Age = "10" }, ""},
		{"age max", func(r *rawProfile) { r.Age = "110" }, ""},
		{"age below", func(r *rawProfile) { r.Age = "9" }, "age"},
		{"age above", func(r *rawProfile) { r.Age = "111" }, "age"},
		{"age fraction", func(r *rawProfile) { r.Age = "30.5" }, "age"},
		{"feet min", func(r *rawProfile) { r.HeightFeet = "3" }, ""},
		{"feet above", func(r *rawProfile) { r.HeightFeet = "10" }, "height_feet"},
		{"inches zero", func(r *rawProfile) { r.HeightInches = "0" }, ""},
		{"inches negative", func(r *rawProfile) { r.HeightInches = "-1" }, "height_inches"},
		{"inches above", func(r *rawProfile) { r.HeightInches = "12" }, "height_inches"},
		{"current min", func(r *rawProfile) { r.CurrentWeight = "75" }, ""},
		{"current max", func(r *rawProfile) { r.CurrentWeight = "650" }, ""},
		{"current above", func(r *rawProfile) { r.CurrentWeight = "650.01" }, "current_weight"},
		{"goal below", func(r *rawProfile) { r.GoalWeight = "74.99" }, "goal_weight"},
		{"goal NaN", func(r *rawProfile) { r.GoalWeight = "NaN" }, "goal_weight"},
		{"current Inf", func(r *rawProfile) { r.CurrentWeight = "Inf" }, "current_weight"},
		{"female", func(r *rawProfile) { r.Gender = "female" }, ""},
		{"gender case", func(r *rawProfile) { r.Gender = "Male" }, "gender"},
		{"gender empty", func(r *rawProfile) { r.Gender = "" }, "gender"},
		{"gender padded", func(r *rawProfile) { r.Gender = " male\t" }, "gender"},
		{"gender trailing space", func(r *rawProfile) { r.Gender = "female " }, "gender"},
		{"whitespace", func(r *rawProfile) { r.Age = " 30 " }, ""},
		{"age decimal whole", func(r *rawProfile) { r.Age = "30.0" }, ""},
		{"age exponent", func(r *rawProfile) { r.Age = "3e1" }, ""},
		{"inches exponent", func(r *rawProfile) { r.HeightInches = "1.1e1" }, ""},
		{"feet exponent fraction", func(r *rawProfile) { r.HeightFeet = "5.5e0" }, "height_feet"},
		{"age huge", func(r *rawProfile) { r.Age = "1e300" }, "age"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := makeRaw()
			tc.mutFn(&raw)
			_, err := validateProfile(raw)
			if tc.field == "" {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			var verrs validationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected validationErrors, got %v", err)
			}
			if len(verrs) != 1 || verrs[0].Field != tc.field {
				t.Errorf("violations = %+v, want exactly one on %s", verrs, tc.field)
			}
		})
	}
}

// TestValidateProfile_ActivityFactorExact verifies only the seven enumerated
// factors pass, with no tolerance for near misses.
func TestValidateProfile_ActivityFactorExact(t *testing.T) {
	for _, f := range []string{"1", "1.0", "1.2", "1.375", "1.465", "1.55", "1.725", "1.9"} {
		raw := makeRaw()
		raw.ActivityFactor = rawField(f)
		if _, err := validateProfile(raw); err != nil {
			t.Errorf("factor %s rejected: %v", f, err)
		}
	}
	for _, f := range []string{"1.201", "1.199", "1.3", "2", "0", "", "moderate"} {
		raw := makeRaw()
		raw.ActivityFactor = rawField(f)
		if _, err := validateProfile(raw); err == nil {
			t.Errorf("factor %q accepted, want rejection", f)
		}
	}
}

// TestValidateProfile_AllViolationsInOrder verifies every field is checked and
// messages are reported in field declaration order, joined by newlines.
func TestValidateProfile_AllViolationsInOrder(t *testing.T) {
	raw := rawProfile{
		Gender:         "other",
		Age:            "abc",
		HeightFeet:     "2",
		HeightInches:   "",
		CurrentWeight:  "10",
		GoalWeight:     "999",
		ActivityFactor: "1.201",
	}
	_, err := validateProfile(raw)
	var verrs validationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validationErrors, got %v", err)
	}

	wantFields := []string{"gender", "age", "height_feet", "height_inches", "current_weight", "goal_weight", "activity_factor"}
	if len(verrs) != len(wantFields) {
		t.Fatalf("got %d violations, want %d: %v", len(verrs), len(wantFields), verrs)
	}
	for i, f := range wantFields {
		if verrs[i].Field != f {
			t.Errorf("violation %d field = %s, want %s", i, verrs[i].Field, f)
		}
	}

	msg := err.Error()
	if !strings.HasPrefix(msg, "Please enter a valid gender: male or female\nPlease enter a valid age between 10 and 110.\n") {
		t.Errorf("unexpected message head: %q", msg)
	}
	if !strings.HasSuffix(msg, "Please enter a valid activity level.") {
		t.Errorf("unexpected message tail: %q", msg)
	}
	if strings.Count(msg, "\n") != len(wantFields)-1 {
		t.Errorf("expected %d newline separators in %q", len(wantFields)-1, msg)
	}
}

func TestProfileInputFields(t *testing.T) {
	p, err := validateProfile(rawProfile{
		Gender: "female", Age: "45", HeightFeet: "5", HeightInches: "4",
		CurrentWeight: "150.50", GoalWeight: "165", ActivityFactor: "1.0",
	})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"gender":          "female",
		"age":             "45",
		"height_feet":     "5",
		"height_inches":   "4",
		"current_weight":  "150.5",
		"goal_weight":     "165",
		"activity_factor": "1",
	}
	got := p.inputFields()
	for k, v := range want {
		if got[k] != v {
			t.Errorf("inputFields[%s] = %q, want %q", k, got[k], v)
		}
	}
	if len(got) != len(want) {
		t.Errorf("inputFields has %d keys, want %d", len(got), len(want))
	}
}

// TestValidateProfile_NumericJSONForms verifies bare JSON numbers in any
// whole-valued form decode into integer fields.
func TestValidateProfile_NumericJSONForms(t *testing.T) {
	body := `{"gender":"male","age":3e1,"height_feet":5.0,"height_inches":1E1,` +
		`"current_weight":2e2,"goal_weight":180,"activity_factor":1.55}`
	var raw rawProfile
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	p, err := validateProfile(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Age != 30 || p.HeightFeet != 5 || p.HeightInches != 10 || p.CurrentWeightLBS != 200 {
		t.Errorf("profile = %+v", p)
	}
	if got := p.inputFields()["age"]; got != "30" {
		t.Errorf("saved age = %q, want normalized 30", got)
	}
}
