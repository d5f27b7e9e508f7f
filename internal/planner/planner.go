package planner

import (
	"context"
	"fmt"
	"log"
	"time"

	"mealplan-assistant/internal/llm"
	"mealplan-assistant/internal/profile"
	"mealplan-assistant/internal/shared"
)

// Planner generates validated weekly meal plans over an LLM session.
type Planner struct {
	session *llm.Session
}

// NewPlanner creates a Planner bound to the process's provider session.
// A nil session is allowed; generation then reports llm.ErrNoProvider.
func NewPlanner(session *llm.Session) *Planner {
	return &Planner{session: session}
}

// GeneratePlan runs one full generation: build the prompt, issue a single
// completion call, parse and validate the result. There are no retries on
// any failure class; callers render an error as "no plan" and the cause
// stays in the logs. The meta return carries provider, token usage and
// latency for the metrics store whenever a completion call happened.
func (p *Planner) GeneratePlan(ctx context.Context, userProfile *profile.UserProfile) (*MealPlan, shared.GenerationMeta, error) {
	var meta shared.GenerationMeta

	if p.session == nil {
		log.Println("LLM session not initialized, cannot generate plan")
		return nil, meta, llm.ErrNoProvider
	}
	if p.session.Client == nil {
		log.Printf("Session for %s has no usable client", p.session.Provider)
		return nil, meta, llm.ErrUnsupportedProvider
	}

	meta.Provider = p.session.Provider

	start := time.Now()
	resp, err := p.session.Client.GenerateContent(ctx, llm.ContentRequest{
		SystemPrompt: SystemPrompt,
		UserPrompt:   BuildUserPrompt(userProfile),
	})
	meta.Latency = time.Since(start)
	meta.Usage = resp.Usage
	if err != nil {
		log.Printf("LLM API call failed: %v", err)
		return nil, meta, fmt.Errorf("completion request failed: %w", err)
	}

	plan, err := ParseMealPlan(resp.Content)
	if err != nil {
		log.Printf("Failed to parse meal plan: %v. Raw output: %s", err, resp.Content)
		return nil, meta, err
	}

	log.Println("Successfully parsed and validated meal plan")
	return plan, meta, nil
}
