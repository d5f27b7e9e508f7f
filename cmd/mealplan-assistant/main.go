package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"mealplan-assistant/internal/app"
	"mealplan-assistant/internal/config"
	"mealplan-assistant/internal/database"
	"mealplan-assistant/internal/llm"
	"mealplan-assistant/internal/metrics"
	"mealplan-assistant/internal/planner"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	metricsStore := metrics.NewStore(db.SQL)
	planRepo := planner.NewPlanRepository(db.SQL)

	switch os.Args[1] {
	case "generate":
		genCmd := flag.NewFlagSet("generate", flag.ExitOnError)
		restrictions := genCmd.String("restrictions", "", "Comma-separated dietary restrictions")
		allergies := genCmd.String("allergies", "", "Comma-separated allergies")
		dislikes := genCmd.String("dislikes", "", "Comma-separated dislikes")
		goals := genCmd.String("goals", "", "Comma-separated health or fitness goals")
		calories := genCmd.Int("calories", 0, "Target daily calories")
		cuisines := genCmd.String("cuisines", "", "Comma-separated preferred cuisines")
		complexity := genCmd.String("complexity", "", "Desired meal complexity (Simple, Medium, Complex)")
		cooktime := genCmd.Int("cooktime", 0, "Max cook time per meal in minutes")
		asJSON := genCmd.Bool("json", false, "Print the raw plan JSON instead of the rendered view")
		genCmd.Parse(os.Args[2:])

		if !cfg.HasAnyProviderKey() {
			log.Fatal("No LLM credential set. Set OPENAI_API_KEY, ANTHROPIC_API_KEY, or GEMINI_API_KEY.")
		}

		session, err := llm.NewSession(ctx, cfg)
		if err != nil {
			log.Fatalf("Cannot generate a plan: %v", err)
		}
		defer session.Close()

		application := app.NewApp(cfg, metricsStore, planRepo, planner.NewPlanner(session))
		err = application.GenerateMealPlan(ctx, app.GenerateOptions{
			Restrictions: *restrictions,
			Allergies:    *allergies,
			Dislikes:     *dislikes,
			Goals:        *goals,
			Calories:     *calories,
			Cuisines:     *cuisines,
			Complexity:   *complexity,
			CookTime:     *cooktime,
			JSON:         *asJSON,
		})
		if err != nil {
			log.Fatalf("Generation failed: %v", err)
		}
	case "usage":
		usageCmd := flag.NewFlagSet("usage", flag.ExitOnError)
		days := usageCmd.Int("days", 7, "Show usage for the last N days")
		usageCmd.Parse(os.Args[2:])

		application := app.NewApp(cfg, metricsStore, planRepo, nil)
		if err := application.UsageReport(*days); err != nil {
			log.Fatalf("Usage report failed: %v", err)
		}
	case "history":
		historyCmd := flag.NewFlagSet("history", flag.ExitOnError)
		limit := historyCmd.Int("limit", 5, "Show the last N generated plans")
		historyCmd.Parse(os.Args[2:])

		application := app.NewApp(cfg, metricsStore, planRepo, nil)
		if err := application.HistoryReport(ctx, *limit); err != nil {
			log.Fatalf("History report failed: %v", err)
		}
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := metricsStore.Cleanup(*days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: mealplan-assistant <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  generate           Generate a 7-day meal plan from profile flags")
	fmt.Println("  usage              Show recent LLM token usage and system health")
	fmt.Println("  history            Show recently generated plans")
	fmt.Println("  metrics-cleanup    Remove old metric records")
}
