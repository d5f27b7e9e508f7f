package web

import (
	"context"
	"embed"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"mealplan-assistant/internal/metrics"
	"mealplan-assistant/internal/planner"
	"mealplan-assistant/internal/profile"
	"mealplan-assistant/internal/shared"
)

//go:embed templates/*.html
var templateFS embed.FS

// PlanGenerator produces a validated weekly plan for a profile.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, p *profile.UserProfile) (*planner.MealPlan, shared.GenerationMeta, error)
}

// Server renders the profile form and the generated plans.
type Server struct {
	generator PlanGenerator
	metrics   *metrics.Store
	planRepo  *planner.PlanRepository
	tmpl      *template.Template
}

// NewServer creates the web surface. The metrics store and the plan
// repository may be nil, in which case recording is skipped.
func NewServer(generator PlanGenerator, metricsStore *metrics.Store, planRepo *planner.PlanRepository) *Server {
	return &Server{
		generator: generator,
		metrics:   metricsStore,
		planRepo:  planRepo,
		tmpl:      template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

// RegisterHandlers attaches the web routes to the mux.
func (s *Server) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/plan", s.handlePlan)
	mux.HandleFunc("/health", s.handleHealth)
}

type indexData struct {
	Warning string
}

type planData struct {
	Days []planner.Day
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.render(w, "index.html", indexData{})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	userProfile := profileFromForm(r)
	if userProfile.Underspecified() {
		s.render(w, "index.html", indexData{
			Warning: "Please fill in at least one profile field to get a personalized plan.",
		})
		return
	}

	plan, meta, err := s.generator.GeneratePlan(r.Context(), userProfile)
	if s.metrics != nil {
		if recErr := s.metrics.RecordMeta(meta); recErr != nil {
			log.Printf("Failed to record metrics: %v", recErr)
		}
	}
	if err != nil {
		log.Printf("Meal plan generation failed: %v", err)
		s.render(w, "error.html", nil)
		return
	}

	if s.planRepo != nil {
		if saveErr := s.planRepo.Save(r.Context(), userProfile, plan, meta); saveErr != nil {
			log.Printf("Failed to save meal plan: %v", saveErr)
		}
	}

	s.render(w, "plan.html", planData{Days: plan.Days()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// profileFromForm builds a profile from the submitted comma-separated
// fields. Non-positive or unparseable numbers count as unset, and the
// preferences block is only attached when it carries something.
func profileFromForm(r *http.Request) *profile.UserProfile {
	userProfile := &profile.UserProfile{
		DietaryRestrictions: profile.ParseList(r.FormValue("dietary_restrictions")),
		Allergies:           profile.ParseList(r.FormValue("allergies")),
		Dislikes:            profile.ParseList(r.FormValue("dislikes")),
		Goals:               profile.ParseList(r.FormValue("goals")),
	}
	if n, err := strconv.Atoi(r.FormValue("target_calories")); err == nil && n > 0 {
		userProfile.TargetCalories = n
	}

	prefs := &profile.UserPreferences{
		CuisineTypes: profile.ParseList(r.FormValue("cuisine_types")),
	}
	if c := r.FormValue("complexity"); c != "" && c != "Any" {
		prefs.Complexity = c
	}
	if n, err := strconv.Atoi(r.FormValue("cook_time_limit_minutes")); err == nil && n > 0 {
		prefs.CookTimeLimitMinutes = n
	}
	if len(prefs.CuisineTypes) > 0 || prefs.Complexity != "" || prefs.CookTimeLimitMinutes > 0 {
		userProfile.Preferences = prefs
	}

	return userProfile
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Failed to render %s: %v", name, err)
	}
}
