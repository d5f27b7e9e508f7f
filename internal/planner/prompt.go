package planner

import (
	_ "embed"
	"fmt"
	"strings"

	"mealplan-assistant/internal/profile"
)

//go:embed mealplan_schema.json
var mealPlanSchema string

// SystemPrompt is the fixed role instruction sent with every completion,
// regardless of provider.
const SystemPrompt = "You are a helpful meal planning assistant. " +
	"Generate meal plans strictly in the requested JSON format based on user profiles. " +
	"Output ONLY the JSON object."

// BuildUserPrompt renders the profile into the generation prompt. It is a
// pure function of its input: no clock, no environment, no I/O, so the same
// profile always produces the same string.
func BuildUserPrompt(p *profile.UserProfile) string {
	var b strings.Builder

	b.WriteString("Generate a personalized 7-day meal plan (Monday to Sunday) for a user with the following profile:\n")
	fmt.Fprintf(&b, "- Dietary Restrictions: %s\n", joinOr(p.DietaryRestrictions, "None"))
	fmt.Fprintf(&b, "- Allergies: %s\n", joinOr(p.Allergies, "None"))
	fmt.Fprintf(&b, "- Dislikes: %s\n", joinOr(p.Dislikes, "None"))
	fmt.Fprintf(&b, "- Goals: %s\n", joinOr(p.Goals, "None specified"))
	if p.TargetCalories > 0 {
		fmt.Fprintf(&b, "- Target Daily Calories: Approximately %d kcal\n", p.TargetCalories)
	}
	if prefs := p.Preferences; prefs != nil {
		if len(prefs.CuisineTypes) > 0 {
			fmt.Fprintf(&b, "- Preferred Cuisines: %s\n", strings.Join(prefs.CuisineTypes, ", "))
		}
		if prefs.Complexity != "" {
			fmt.Fprintf(&b, "- Desired Complexity: %s\n", prefs.Complexity)
		}
		if prefs.CookTimeLimitMinutes > 0 {
			fmt.Fprintf(&b, "- Max Cook Time Per Meal: %d minutes\n", prefs.CookTimeLimitMinutes)
		}
	}

	b.WriteString("\nPlease provide a plan including Breakfast, Lunch, and Dinner for each day.")
	b.WriteString(" For each meal, provide a 'meal_name' and a 'recipe' with simple, easy-to-follow instructions.")
	b.WriteString(" Ensure the plan strictly adheres to all dietary restrictions, allergies, and dislikes.")
	b.WriteString(" Structure the output as a valid JSON object following this exact schema:\n")
	fmt.Fprintf(&b, "```json\n%s\n```\n", strings.TrimSpace(mealPlanSchema))
	b.WriteString("Ensure the final output is ONLY the JSON object, without any introductory text, explanations, or markdown code fences.")

	return b.String()
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}
