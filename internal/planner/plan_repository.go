package planner

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"mealplan-assistant/internal/profile"
	"mealplan-assistant/internal/shared"
)

const timeLayout = "2006-01-02 15:04:05"

// StoredPlan is one generated plan kept for later reference.
type StoredPlan struct {
	ID        int64
	Provider  string
	Model     string
	Profile   *profile.UserProfile
	Plan      *MealPlan
	CreatedAt time.Time
}

// PlanRepository is a database-backed archive of generated plans.
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(db *sql.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// Save archives a validated plan together with the profile that produced it.
func (r *PlanRepository) Save(ctx context.Context, userProfile *profile.UserProfile, plan *MealPlan, meta shared.GenerationMeta) error {
	profileJSON, err := json.Marshal(userProfile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	planJSON, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO meal_plans (provider, model, profile_json, plan_json, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		meta.Provider, meta.Usage.Model, string(profileJSON), string(planJSON),
		time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to save meal plan: %w", err)
	}
	return nil
}

// ListRecent returns up to limit archived plans, newest first.
func (r *PlanRepository) ListRecent(ctx context.Context, limit int) ([]StoredPlan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, provider, model, profile_json, plan_json, created_at
		 FROM meal_plans
		 ORDER BY id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	defer rows.Close()

	var plans []StoredPlan
	for rows.Next() {
		var (
			stored      StoredPlan
			profileJSON string
			planJSON    string
			createdAt   string
		)
		if err := rows.Scan(&stored.ID, &stored.Provider, &stored.Model, &profileJSON, &planJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan meal plan row: %w", err)
		}
		if err := json.Unmarshal([]byte(profileJSON), &stored.Profile); err != nil {
			return nil, fmt.Errorf("failed to decode stored profile %d: %w", stored.ID, err)
		}
		if err := json.Unmarshal([]byte(planJSON), &stored.Plan); err != nil {
			return nil, fmt.Errorf("failed to decode stored plan %d: %w", stored.ID, err)
		}
		if ts, err := time.Parse(timeLayout, createdAt); err == nil {
			stored.CreatedAt = ts
		}
		plans = append(plans, stored)
	}
	return plans, rows.Err()
}
