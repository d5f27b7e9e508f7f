package app

import (
	"fmt"
	"io"
	"strings"

	"mealplan-assistant/internal/metrics"
	"mealplan-assistant/internal/planner"
	"mealplan-assistant/internal/shared"

	"github.com/fatih/color"
)

var (
	bold   = color.New(color.Bold).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

// renderPlan writes the weekly plan day by day, with a short footer naming
// the provider that produced it.
func renderPlan(w io.Writer, plan *planner.MealPlan, meta shared.GenerationMeta) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, bold("=== YOUR 7-DAY MEAL PLAN ==="))

	for _, day := range plan.Days() {
		fmt.Fprintf(w, "\n%s\n", green(day.Name))
		renderMeal(w, "Breakfast", day.Plan.Breakfast)
		renderMeal(w, "Lunch", day.Plan.Lunch)
		renderMeal(w, "Dinner", day.Plan.Dinner)
		if day.Plan.Snacks != nil {
			renderMeal(w, "Snacks", day.Plan.Snacks)
		}
	}

	footer := fmt.Sprintf("Generated by %s (%s) in %.1fs, %d tokens",
		meta.Provider, meta.Usage.Model, meta.Latency.Seconds(), meta.Usage.TotalTokens)
	fmt.Fprintf(w, "\n%s\n", gray(footer))
}

func renderMeal(w io.Writer, slot string, meal *planner.Meal) {
	fmt.Fprintf(w, "  %s %s\n", cyan(slot+":"), bold(meal.MealName))
	fmt.Fprintf(w, "    %s\n", meal.Recipe)
}

// renderHistory writes one block per archived plan, newest first.
func renderHistory(w io.Writer, plans []planner.StoredPlan) {
	fmt.Fprintln(w, bold("=== PLAN HISTORY ==="))
	if len(plans) == 0 {
		fmt.Fprintln(w, gray("No plans generated yet"))
		return
	}

	for _, p := range plans {
		fmt.Fprintf(w, "%s  %s (%s)\n", yellow(p.CreatedAt.Format("2006-01-02 15:04")), p.Provider, p.Model)
		if p.Profile != nil && len(p.Profile.DietaryRestrictions) > 0 {
			fmt.Fprintf(w, "    Restrictions: %s\n", strings.Join(p.Profile.DietaryRestrictions, ", "))
		}
		if p.Plan != nil && p.Plan.Monday != nil && p.Plan.Monday.Dinner != nil {
			fmt.Fprintf(w, "    Monday dinner: %s\n", p.Plan.Monday.Dinner.MealName)
		}
	}
}

// renderUsage writes the daily token totals and the system health block.
func renderUsage(w io.Writer, usage []metrics.DailyUsage, health metrics.SysHealth) {
	fmt.Fprintln(w, bold("=== LLM USAGE ==="))
	if len(usage) == 0 {
		fmt.Fprintln(w, gray("No data yet"))
	}
	for _, d := range usage {
		fmt.Fprintf(w, "%s: %d prompt + %d completion tokens (%d plans)\n",
			yellow(d.Date), d.TotalPrompt, d.TotalCompletion, d.TotalExecution)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, bold("=== SYSTEM HEALTH ==="))
	fmt.Fprintf(w, "RAM: %dMB alloc / %dMB sys\n", health.AllocMB, health.SysMB)
	fmt.Fprintf(w, "GC runs: %d, goroutines: %d\n", health.NumGC, health.Goroutines)
	fmt.Fprintf(w, "Database size: %s\n", health.DBSize)
}
