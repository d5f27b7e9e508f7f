package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"mealplan-assistant/internal/metrics"
	"mealplan-assistant/internal/planner"
	"mealplan-assistant/internal/profile"
)

func isPlanCommand(text string) bool {
	return text == "/plan" || strings.HasPrefix(text, "/plan\n") || strings.HasPrefix(text, "/plan ")
}

// parseProfileMessage reads the labeled lines following /plan. Labels are
// case-insensitive; unknown labels and unparseable numbers are ignored.
func parseProfileMessage(text string) *profile.UserProfile {
	userProfile := &profile.UserProfile{}
	prefs := &profile.UserPreferences{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "/") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		label := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])

		switch label {
		case "restrictions":
			userProfile.DietaryRestrictions = profile.ParseList(value)
		case "allergies":
			userProfile.Allergies = profile.ParseList(value)
		case "dislikes":
			userProfile.Dislikes = profile.ParseList(value)
		case "goals":
			userProfile.Goals = profile.ParseList(value)
		case "calories":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				userProfile.TargetCalories = n
			}
		case "cuisines":
			prefs.CuisineTypes = profile.ParseList(value)
		case "complexity":
			if value != "" && !strings.EqualFold(value, "any") {
				prefs.Complexity = value
			}
		case "cooktime":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				prefs.CookTimeLimitMinutes = n
			}
		}
	}

	if len(prefs.CuisineTypes) > 0 || prefs.Complexity != "" || prefs.CookTimeLimitMinutes > 0 {
		userProfile.Preferences = prefs
	}

	return userProfile
}

func formatPlanMarkdown(plan *planner.MealPlan) string {
	var sb strings.Builder
	sb.WriteString("📅 *Your 7-Day Meal Plan*\n")

	for _, day := range plan.Days() {
		sb.WriteString(fmt.Sprintf("\n*%s*\n", day.Name))
		writeMeal(&sb, "Breakfast", day.Plan.Breakfast)
		writeMeal(&sb, "Lunch", day.Plan.Lunch)
		writeMeal(&sb, "Dinner", day.Plan.Dinner)
		if day.Plan.Snacks != nil {
			writeMeal(&sb, "Snacks", day.Plan.Snacks)
		}
	}

	return sb.String()
}

func writeMeal(sb *strings.Builder, slot string, meal *planner.Meal) {
	sb.WriteString(fmt.Sprintf("• *%s*: %s\n", slot, meal.MealName))
	sb.WriteString(fmt.Sprintf("_%s_\n", meal.Recipe))
}

func formatUsageReport(usage []metrics.DailyUsage, health metrics.SysHealth) string {
	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent LLM Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d tokens (%d plans)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Database: %s\n", health.DBSize))

	return sb.String()
}

// chunkMessage splits text into pieces at or below limit, breaking on line
// boundaries so Markdown markers stay paired. A single line longer than the
// limit is split mid-line as a last resort.
func chunkMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var parts []string
	var current string
	flush := func() {
		if current != "" {
			parts = append(parts, current)
			current = ""
		}
	}

	for _, line := range strings.Split(text, "\n") {
		for len(line) > limit {
			flush()
			parts = append(parts, line[:limit])
			line = line[limit:]
		}
		candidate := line
		if current != "" {
			candidate = current + "\n" + line
		}
		if len(candidate) > limit {
			flush()
			current = line
		} else {
			current = candidate
		}
	}
	flush()

	return parts
}
