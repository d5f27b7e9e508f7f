package profile

import "strings"

// UserPreferences captures optional taste and effort preferences.
type UserPreferences struct {
	CuisineTypes         []string `json:"cuisine_types,omitempty"`
	Complexity           string   `json:"complexity,omitempty"`
	CookTimeLimitMinutes int      `json:"cook_time_limit_minutes,omitempty"`
}

// UserProfile describes the dietary profile a meal plan is generated for.
// Zero values mean "not specified": empty lists, a nil Preferences and a
// zero TargetCalories are all valid.
type UserProfile struct {
	DietaryRestrictions []string         `json:"dietary_restrictions,omitempty"`
	Allergies           []string         `json:"allergies,omitempty"`
	Dislikes            []string         `json:"dislikes,omitempty"`
	Goals               []string         `json:"goals,omitempty"`
	Preferences         *UserPreferences `json:"preferences,omitempty"`
	TargetCalories      int              `json:"target_calories,omitempty"`
}

// Underspecified reports whether the profile carries nothing to plan from:
// all four list fields empty and no calorie target. Surfaces refuse to
// generate from such a profile.
func (p *UserProfile) Underspecified() bool {
	return len(p.DietaryRestrictions) == 0 &&
		len(p.Allergies) == 0 &&
		len(p.Dislikes) == 0 &&
		len(p.Goals) == 0 &&
		p.TargetCalories == 0
}

// ParseList splits free-text comma-separated input into a clean list:
// items are trimmed and empty entries dropped. "a, , b" becomes ["a" "b"].
func ParseList(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}

	var items []string
	for _, part := range strings.Split(input, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}
