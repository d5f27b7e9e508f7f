package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedResponse marks provider output that is not JSON at all.
	ErrMalformedResponse = errors.New("response is not valid JSON")

	// ErrSchemaMismatch marks JSON that does not match the meal plan shape.
	ErrSchemaMismatch = errors.New("response does not match the meal plan schema")
)

// Meal is a single meal slot entry. Both fields must be non-empty.
type Meal struct {
	MealName string `json:"meal_name"`
	Recipe   string `json:"recipe"`
}

// DailyPlan holds the meals for one day. Breakfast, lunch and dinner are
// required; snacks are optional and stay off the wire when absent.
type DailyPlan struct {
	Breakfast *Meal `json:"breakfast"`
	Lunch     *Meal `json:"lunch"`
	Dinner    *Meal `json:"dinner"`
	Snacks    *Meal `json:"snacks,omitempty"`
}

// MealPlan is a full week, Monday through Sunday. All seven days are
// required and the wire keys are the lowercase day names.
type MealPlan struct {
	Monday    *DailyPlan `json:"monday"`
	Tuesday   *DailyPlan `json:"tuesday"`
	Wednesday *DailyPlan `json:"wednesday"`
	Thursday  *DailyPlan `json:"thursday"`
	Friday    *DailyPlan `json:"friday"`
	Saturday  *DailyPlan `json:"saturday"`
	Sunday    *DailyPlan `json:"sunday"`
}

// Day pairs a display name with one day's plan.
type Day struct {
	Name string
	Plan *DailyPlan
}

// Days returns the week in order, for rendering and validation.
func (p *MealPlan) Days() []Day {
	return []Day{
		{"Monday", p.Monday},
		{"Tuesday", p.Tuesday},
		{"Wednesday", p.Wednesday},
		{"Thursday", p.Thursday},
		{"Friday", p.Friday},
		{"Saturday", p.Saturday},
		{"Sunday", p.Sunday},
	}
}

// ParseMealPlan turns raw provider output into a validated plan. The text is
// taken exactly as received: no fence stripping, no trimming. Input that is
// not JSON maps to ErrMalformedResponse; JSON of the wrong shape maps to
// ErrSchemaMismatch with the violations listed.
func ParseMealPlan(raw string) (*MealPlan, error) {
	var probe interface{}
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	plan := &MealPlan{}
	if err := dec.Decode(plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	return plan, nil
}

// Validate checks the week shape: all seven days present, the three
// required slots per day, non-empty meal fields, and the same meal rules
// for snacks when they appear. Every violation is collected into the error.
func (p *MealPlan) Validate() error {
	var violations []string

	for _, day := range p.Days() {
		key := strings.ToLower(day.Name)
		if day.Plan == nil {
			violations = append(violations, "missing "+key)
			continue
		}

		slots := []struct {
			name     string
			meal     *Meal
			required bool
		}{
			{"breakfast", day.Plan.Breakfast, true},
			{"lunch", day.Plan.Lunch, true},
			{"dinner", day.Plan.Dinner, true},
			{"snacks", day.Plan.Snacks, false},
		}

		for _, slot := range slots {
			if slot.meal == nil {
				if slot.required {
					violations = append(violations, fmt.Sprintf("missing %s.%s", key, slot.name))
				}
				continue
			}
			if slot.meal.MealName == "" {
				violations = append(violations, fmt.Sprintf("empty %s.%s.meal_name", key, slot.name))
			}
			if slot.meal.Recipe == "" {
				violations = append(violations, fmt.Sprintf("empty %s.%s.recipe", key, slot.name))
			}
		}
	}

	if len(violations) > 0 {
		return fmt.Errorf("%w: %s", ErrSchemaMismatch, strings.Join(violations, "; "))
	}
	return nil
}
