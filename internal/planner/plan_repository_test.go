package planner

import (
	"context"
	"testing"

	"mealplan-assistant/internal/database"
	"mealplan-assistant/internal/profile"
	"mealplan-assistant/internal/shared"
)

func TestPlanRepository(t *testing.T) {
	db, err := database.NewDB(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	defer db.Close()
	repo := NewPlanRepository(db.SQL)
	ctx := context.Background()

	userProfile := &profile.UserProfile{DietaryRestrictions: []string{"vegetarian"}}
	meta := shared.GenerationMeta{Provider: "OpenAI", Usage: shared.TokenUsage{Model: "gpt-3.5-turbo"}}

	first := makeValidPlan()
	second := makeValidPlan()
	second.Friday.Dinner.MealName = "Lentil curry"

	if err := repo.Save(ctx, userProfile, first, meta); err != nil {
		t.Fatalf("failed to save first plan: %v", err)
	}
	if err := repo.Save(ctx, userProfile, second, meta); err != nil {
		t.Fatalf("failed to save second plan: %v", err)
	}

	plans, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("failed to list plans: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("expected 2 stored plans, got %d", len(plans))
	}

	newest := plans[0]
	if newest.Plan.Friday.Dinner.MealName != "Lentil curry" {
		t.Errorf("expected the newest plan first, got %q", newest.Plan.Friday.Dinner.MealName)
	}
	if newest.Provider != "OpenAI" || newest.Model != "gpt-3.5-turbo" {
		t.Errorf("unexpected provenance: %s / %s", newest.Provider, newest.Model)
	}
	if newest.Profile == nil || len(newest.Profile.DietaryRestrictions) != 1 || newest.Profile.DietaryRestrictions[0] != "vegetarian" {
		t.Errorf("stored profile did not round-trip: %+v", newest.Profile)
	}
	if newest.CreatedAt.IsZero() {
		t.Error("expected a creation timestamp")
	}

	limited, err := repo.ListRecent(ctx, 1)
	if err != nil {
		t.Fatalf("failed to list with limit: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected the limit to apply, got %d plans", len(limited))
	}
}
