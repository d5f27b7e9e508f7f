package acceptance_tests

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"mealplan-assistant/internal/database"
	"mealplan-assistant/internal/llm"
	"mealplan-assistant/internal/metrics"
	"mealplan-assistant/internal/planner"
	"mealplan-assistant/internal/profile"
	"mealplan-assistant/internal/shared"
)

// --- Mock LLM Client ---
type mockLLMClient struct {
	response             string
	err                  error
	generateContentCalls int
	lastRequest          llm.ContentRequest
}

func (m *mockLLMClient) GenerateContent(ctx context.Context, req llm.ContentRequest) (llm.ContentResponse, error) {
	m.generateContentCalls++
	m.lastRequest = req
	if m.err != nil {
		return llm.ContentResponse{}, m.err
	}
	return llm.ContentResponse{
		Content: m.response,
		Usage:   shared.TokenUsage{PromptTokens: 120, CompletionTokens: 600, TotalTokens: 720, Model: "test-model"},
	}, nil
}

func validPlanJSON(t *testing.T) string {
	t.Helper()
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
	plan.Monday.Snacks = meal("Greek yogurt")

	payload, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("Failed to marshal plan fixture: %v", err)
	}
	return string(payload)
}

// --- Acceptance Test ---
func TestPlanGenerationWorkflow(t *testing.T) {
	ctx := context.Background()

	// 1. In-memory database for metrics
	db, err := database.NewDB(":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	metricsStore := metrics.NewStore(db.SQL)

	// 2. A session around the mock client, shaped like the selector builds it
	llmClient := &mockLLMClient{response: validPlanJSON(t)}
	session := &llm.Session{Provider: "OpenAI", Model: "test-model", Client: llmClient}
	mealPlanner := planner.NewPlanner(session)

	// --- Step 1: Generate a plan for a full profile ---
	t.Log("--- Step 1: Generating the plan ---")
	userProfile := &profile.UserProfile{
		DietaryRestrictions: []string{"vegetarian"},
		Allergies:           []string{"peanuts"},
		Goals:               []string{"weight loss"},
		TargetCalories:      1800,
	}

	plan, meta, err := mealPlanner.GeneratePlan(ctx, userProfile)
	if err != nil {
		t.Fatalf("Plan generation failed: %v", err)
	}
	if llmClient.generateContentCalls != 1 {
		t.Errorf("Expected 1 call to the LLM, got %d", llmClient.generateContentCalls)
	}

	if llmClient.lastRequest.SystemPrompt != planner.SystemPrompt {
		t.Error("Expected the planner system prompt to be sent")
	}
	prompt := llmClient.lastRequest.UserPrompt
	for _, want := range []string{
		"- Dietary Restrictions: vegetarian",
		"- Allergies: peanuts",
		"- Goals: weight loss",
		"- Target Daily Calories: Approximately 1800 kcal",
		"Ensure the final output is ONLY the JSON object",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q", want)
		}
	}

	for _, day := range plan.Days() {
		if day.Plan == nil || day.Plan.Breakfast == nil || day.Plan.Lunch == nil || day.Plan.Dinner == nil {
			t.Fatalf("Day %s is incomplete in the validated plan", day.Name)
		}
	}
	if plan.Monday.Breakfast.MealName != "Monday breakfast" {
		t.Errorf("Expected the stub meal name to come through, got %q", plan.Monday.Breakfast.MealName)
	}
	if plan.Monday.Snacks == nil || plan.Monday.Snacks.MealName != "Greek yogurt" {
		t.Error("Expected Monday snacks to survive validation")
	}

	// --- Step 2: Record and read back usage ---
	t.Log("--- Step 2: Recording usage ---")
	if meta.Provider != "OpenAI" || meta.Usage.TotalTokens != 720 {
		t.Errorf("Unexpected generation meta: %+v", meta)
	}
	if err := metricsStore.RecordMeta(meta); err != nil {
		t.Fatalf("Failed to record usage: %v", err)
	}
	usage, err := metricsStore.GetDailyUsage(1)
	if err != nil {
		t.Fatalf("Failed to read usage: %v", err)
	}
	if len(usage) != 1 || usage[0].TotalPrompt != 120 || usage[0].TotalExecution != 1 {
		t.Errorf("Unexpected usage rows: %+v", usage)
	}
}

func TestPlanGenerationFailsClosed(t *testing.T) {
	ctx := context.Background()

	// Markdown-fenced output is not pre-cleaned; it fails after exactly one call.
	llmClient := &mockLLMClient{response: "```json\n{}\n```"}
	session := &llm.Session{Provider: "OpenAI", Model: "test-model", Client: llmClient}
	mealPlanner := planner.NewPlanner(session)

	plan, _, err := mealPlanner.GeneratePlan(ctx, &profile.UserProfile{Goals: []string{"muscle gain"}})
	if plan != nil {
		t.Error("Expected no plan for malformed output")
	}
	if !errors.Is(err, planner.ErrMalformedResponse) {
		t.Errorf("Expected ErrMalformedResponse, got %v", err)
	}
	if llmClient.generateContentCalls != 1 {
		t.Errorf("Expected exactly one call without retries, got %d", llmClient.generateContentCalls)
	}
}
