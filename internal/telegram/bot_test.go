package telegram

import (
	"strings"
	"testing"

	"mealplan-assistant/internal/metrics"
	"mealplan-assistant/internal/planner"
)

func testPlan() *planner.MealPlan {
	meal := func(name string) *planner.Meal {
		return &planner.Meal{MealName: name, Recipe: "Cook " + name + "."}
	}
	day := func(prefix string) *planner.DailyPlan {
		return &planner.DailyPlan{
			Breakfast: meal(prefix + " breakfast"),
			Lunch:     meal(prefix + " lunch"),
			Dinner:    meal(prefix + " dinner"),
		}
	}
	plan := &planner.MealPlan{
		Monday:    day("Monday"),
		Tuesday:   day("Tuesday"),
		Wednesday: day("Wednesday"),
		Thursday:  day("Thursday"),
		Friday:    day("Friday"),
		Saturday:  day("Saturday"),
		Sunday:    day("Sunday"),
	}
	plan.Monday.Snacks = meal("Apple slices")
	return plan
}

func TestParseProfileMessage(t *testing.T) {
	text := "/plan\n" +
		"Restrictions: vegetarian, gluten-free\n" +
		"allergies: peanuts\n" +
		"dislikes: mushrooms\n" +
		"GOALS: weight loss\n" +
		"calories: 1800\n" +
		"cuisines: italian, thai\n" +
		"complexity: Simple\n" +
		"cooktime: 45\n" +
		"not a labeled line\n" +
		"unknown: ignored"

	p := parseProfileMessage(text)

	if len(p.DietaryRestrictions) != 2 || p.DietaryRestrictions[1] != "gluten-free" {
		t.Errorf("unexpected restrictions: %v", p.DietaryRestrictions)
	}
	if len(p.Allergies) != 1 || p.Allergies[0] != "peanuts" {
		t.Errorf("unexpected allergies: %v", p.Allergies)
	}
	if len(p.Goals) != 1 || p.Goals[0] != "weight loss" {
		t.Errorf("unexpected goals: %v", p.Goals)
	}
	if p.TargetCalories != 1800 {
		t.Errorf("unexpected target calories: %d", p.TargetCalories)
	}
	if p.Preferences == nil {
		t.Fatal("expected preferences to be set")
	}
	if len(p.Preferences.CuisineTypes) != 2 || p.Preferences.Complexity != "Simple" || p.Preferences.CookTimeLimitMinutes != 45 {
		t.Errorf("unexpected preferences: %+v", p.Preferences)
	}
}

func TestParseProfileMessageIgnoresBadValues(t *testing.T) {
	p := parseProfileMessage("/plan\ncalories: lots\ncooktime: -5\ncomplexity: any")

	if p.TargetCalories != 0 {
		t.Errorf("expected unset calories, got %d", p.TargetCalories)
	}
	if p.Preferences != nil {
		t.Errorf("expected no preferences, got %+v", p.Preferences)
	}
	if !p.Underspecified() {
		t.Error("expected the profile to be underspecified")
	}
}

func TestIsPlanCommand(t *testing.T) {
	for _, text := range []string{"/plan", "/plan\nrestrictions: vegan", "/plan restrictions: vegan"} {
		if !isPlanCommand(text) {
			t.Errorf("expected %q to be a plan command", text)
		}
	}
	for _, text := range []string{"/planner", "/start", "plan"} {
		if isPlanCommand(text) {
			t.Errorf("expected %q not to be a plan command", text)
		}
	}
}

func TestFormatPlanMarkdown(t *testing.T) {
	output := formatPlanMarkdown(testPlan())

	if !strings.Contains(output, "📅 *Your 7-Day Meal Plan*") {
		t.Error("Missing plan header")
	}
	if !strings.Contains(output, "*Monday*") || !strings.Contains(output, "*Sunday*") {
		t.Error("Missing day headers")
	}
	if !strings.Contains(output, "• *Breakfast*: Monday breakfast") {
		t.Error("Missing breakfast line")
	}
	if !strings.Contains(output, "_Cook Monday breakfast._") {
		t.Error("Missing recipe line")
	}
	if got := strings.Count(output, "• *Snacks*"); got != 1 {
		t.Errorf("Expected exactly one snacks line, found %d", got)
	}
}

func TestFormatUsageReport(t *testing.T) {
	usage := []metrics.DailyUsage{
		{Date: "2025-06-02", TotalPrompt: 100, TotalCompletion: 50, TotalExecution: 3},
	}
	health := metrics.SysHealth{AllocMB: 12, SysMB: 30, Goroutines: 8, DBSize: "1.2M"}

	output := formatUsageReport(usage, health)

	if !strings.Contains(output, "📊 *Usage & Health Report*") {
		t.Error("Missing report header")
	}
	if !strings.Contains(output, "• *2025-06-02*: 150 tokens (3 plans)") {
		t.Error("Missing usage line")
	}
	if !strings.Contains(output, "• Database: 1.2M") {
		t.Error("Missing database size line")
	}

	empty := formatUsageReport(nil, health)
	if !strings.Contains(empty, "_No data yet_") {
		t.Error("Missing empty-usage placeholder")
	}
}

func TestChunkMessage(t *testing.T) {
	short := "one\ntwo"
	if parts := chunkMessage(short, 100); len(parts) != 1 || parts[0] != short {
		t.Errorf("expected short text to stay in one part, got %v", parts)
	}

	text := strings.Repeat("0123456789\n", 10) + "tail"
	parts := chunkMessage(text, 25)
	for i, part := range parts {
		if len(part) > 25 {
			t.Errorf("part %d exceeds the limit: %d chars", i, len(part))
		}
	}
	if joined := strings.Join(parts, "\n"); joined != text {
		t.Errorf("rejoined parts do not reconstruct the text:\n%q\nvs\n%q", joined, text)
	}

	long := strings.Repeat("x", 60)
	parts = chunkMessage(long, 25)
	if len(parts) != 3 {
		t.Fatalf("expected the long line to be split into 3 parts, got %d", len(parts))
	}
	for i, part := range parts {
		if len(part) > 25 {
			t.Errorf("part %d exceeds the limit: %d chars", i, len(part))
		}
	}
}
