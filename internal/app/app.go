package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"mealplan-assistant/internal/config"
	"mealplan-assistant/internal/metrics"
	"mealplan-assistant/internal/planner"
	"mealplan-assistant/internal/profile"
)

// App holds the dependencies behind the CLI commands.
type App struct {
	cfg          *config.Config
	metricsStore *metrics.Store
	planRepo     *planner.PlanRepository
	mealPlanner  *planner.Planner
}

// NewApp creates a new App instance.
func NewApp(cfg *config.Config, metricsStore *metrics.Store, planRepo *planner.PlanRepository, mealPlanner *planner.Planner) *App {
	return &App{
		cfg:          cfg,
		metricsStore: metricsStore,
		planRepo:     planRepo,
		mealPlanner:  mealPlanner,
	}
}

// GenerateOptions carries the profile fields collected from CLI flags.
// Comma-separated strings mirror the web form inputs.
type GenerateOptions struct {
	Restrictions string
	Allergies    string
	Dislikes     string
	Goals        string
	Calories     int
	Cuisines     string
	Complexity   string
	CookTime     int
	JSON         bool
}

func (o GenerateOptions) buildProfile() *profile.UserProfile {
	userProfile := &profile.UserProfile{
		DietaryRestrictions: profile.ParseList(o.Restrictions),
		Allergies:           profile.ParseList(o.Allergies),
		Dislikes:            profile.ParseList(o.Dislikes),
		Goals:               profile.ParseList(o.Goals),
	}
	if o.Calories > 0 {
		userProfile.TargetCalories = o.Calories
	}

	prefs := &profile.UserPreferences{
		CuisineTypes: profile.ParseList(o.Cuisines),
	}
	if o.Complexity != "" && o.Complexity != "Any" {
		prefs.Complexity = o.Complexity
	}
	if o.CookTime > 0 {
		prefs.CookTimeLimitMinutes = o.CookTime
	}
	if len(prefs.CuisineTypes) > 0 || prefs.Complexity != "" || prefs.CookTimeLimitMinutes > 0 {
		userProfile.Preferences = prefs
	}

	return userProfile
}

// GenerateMealPlan builds a profile from the options, generates a plan, and
// prints it to stdout.
func (a *App) GenerateMealPlan(ctx context.Context, opts GenerateOptions) error {
	userProfile := opts.buildProfile()
	if userProfile.Underspecified() {
		return errors.New("please provide at least one profile field, e.g. -restrictions vegetarian")
	}

	fmt.Println("Generating your 7-day meal plan...")

	plan, meta, err := a.mealPlanner.GeneratePlan(ctx, userProfile)
	if a.metricsStore != nil {
		if recErr := a.metricsStore.RecordMeta(meta); recErr != nil {
			log.Printf("Warning: failed to record metrics: %v", recErr)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to generate plan: %w", err)
	}

	if a.planRepo != nil {
		if saveErr := a.planRepo.Save(ctx, userProfile, plan, meta); saveErr != nil {
			log.Printf("Warning: failed to save meal plan: %v", saveErr)
		}
	}

	if opts.JSON {
		encoded, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode plan: %w", err)
		}
		fmt.Println(string(encoded))
		return nil
	}

	renderPlan(os.Stdout, plan, meta)
	return nil
}

// UsageReport prints the recent daily token usage and system health.
func (a *App) UsageReport(days int) error {
	usage, err := a.metricsStore.GetDailyUsage(days)
	if err != nil {
		return fmt.Errorf("failed to read usage: %w", err)
	}

	health := metrics.GetSysHealth(a.cfg.DBPath)
	renderUsage(os.Stdout, usage, health)
	return nil
}

// HistoryReport prints the most recently generated plans.
func (a *App) HistoryReport(ctx context.Context, limit int) error {
	plans, err := a.planRepo.ListRecent(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to read plan history: %w", err)
	}

	renderHistory(os.Stdout, plans)
	return nil
}
