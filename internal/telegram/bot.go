package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"mealplan-assistant/internal/config"
	"mealplan-assistant/internal/metrics"
	"mealplan-assistant/internal/planner"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram rejects messages above this many characters.
const telegramMessageLimit = 4096

const startMessage = `👋 *Welcome to the Meal Plan Assistant!*

Send /plan followed by your profile, one labeled line each:

/plan
restrictions: vegetarian, gluten-free
allergies: peanuts
dislikes: mushrooms
goals: weight loss
calories: 1800
cuisines: italian, thai
complexity: Simple
cooktime: 45

Every line is optional, but include at least one. Send /usage for a usage and health report.`

// Bot wraps the Telegram API around the meal planner.
type Bot struct {
	api          *tgbotapi.BotAPI
	planner      *planner.Planner
	metricsStore *metrics.Store
	planRepo     *planner.PlanRepository
	cfg          *config.Config
}

// NewBot initializes the Telegram bot and sets the webhook.
func NewBot(cfg *config.Config, mealPlanner *planner.Planner, metricsStore *metrics.Store, planRepo *planner.PlanRepository) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to build webhook config: %w", err)
	}
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          bot,
		planner:      mealPlanner,
		metricsStore: metricsStore,
		planRepo:     planRepo,
		cfg:          cfg,
	}, nil
}

// RegisterHandlers registers the webhook handler on the mux.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", b.handleWebhook)
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	if b.cfg.TelegramAllowUserID != 0 && update.Message.From.ID != b.cfg.TelegramAllowUserID {
		log.Printf("Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	switch {
	case msg.Text == "/start":
		b.sendMarkdown(msg.Chat.ID, startMessage)
	case msg.Text == "/usage":
		b.handleUsageCommand(msg.Chat.ID)
	case isPlanCommand(msg.Text):
		b.handlePlanCommand(msg)
	default:
		b.sendMarkdown(msg.Chat.ID, "Unknown command. Send /start for instructions.")
	}
}

func (b *Bot) handlePlanCommand(msg *tgbotapi.Message) {
	userProfile := parseProfileMessage(msg.Text)
	if userProfile.Underspecified() {
		b.sendMarkdown(msg.Chat.ID, "Please include at least one profile line after /plan. Send /start for the expected format.")
		return
	}

	statusMsg := tgbotapi.NewMessage(msg.Chat.ID, "🧑‍🍳 *Thinking...* \n(Generating your 7-day meal plan)")
	statusMsg.ParseMode = "Markdown"
	sent, err := b.api.Send(statusMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx := context.Background()
	plan, meta, err := b.planner.GeneratePlan(ctx, userProfile)
	if b.metricsStore != nil {
		if recErr := b.metricsStore.RecordMeta(meta); recErr != nil {
			log.Printf("Failed to record metrics: %v", recErr)
		}
	}
	if err != nil {
		log.Printf("Error generating plan: %v", err)
		edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sent.MessageID, "❌ Sorry, something went wrong while generating the meal plan. Please try again later.")
		b.api.Send(edit)
		return
	}

	if b.planRepo != nil {
		if saveErr := b.planRepo.Save(ctx, userProfile, plan, meta); saveErr != nil {
			log.Printf("Warning: failed to save meal plan: %v", saveErr)
		}
	}

	parts := chunkMessage(formatPlanMarkdown(plan), telegramMessageLimit)
	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sent.MessageID, parts[0])
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
	for _, part := range parts[1:] {
		b.sendMarkdown(msg.Chat.ID, part)
	}
}

func (b *Bot) handleUsageCommand(chatID int64) {
	if b.metricsStore == nil {
		b.sendMarkdown(chatID, "Usage tracking is not enabled.")
		return
	}

	usage, err := b.metricsStore.GetDailyUsage(7)
	if err != nil {
		log.Printf("Error fetching usage: %v", err)
		b.sendMarkdown(chatID, "❌ Error fetching usage.")
		return
	}

	health := metrics.GetSysHealth(b.cfg.DBPath)
	b.sendMarkdown(chatID, formatUsageReport(usage, health))
}

func (b *Bot) sendMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send telegram message: %v", err)
	}
}
