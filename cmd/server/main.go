package main

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/labstack/echo/v4"

	"github.com/KoponovVadim/qrim/internal/ai"
	"github.com/KoponovVadim/qrim/internal/availability"
	"github.com/KoponovVadim/qrim/internal/bot"
	"github.com/KoponovVadim/qrim/internal/config"
	"github.com/KoponovVadim/qrim/internal/dialogue"
	"github.com/KoponovVadim/qrim/internal/handler"
	"github.com/KoponovVadim/qrim/internal/logger"
	"github.com/KoponovVadim/qrim/internal/queue"
	"github.com/KoponovVadim/qrim/internal/repository"
	"github.com/KoponovVadim/qrim/internal/router"
	"github.com/KoponovVadim/qrim/internal/session"
	"github.com/KoponovVadim/qrim/internal/sheets"
)

func main() {
	logger.Init()
	cfg := config.Load()
	ctx := context.Background()

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Error.Fatal("redis unavailable; dialogue state cannot be kept")
	}

	store, err := sheets.NewClient(ctx, cfg.CredentialsFile, cfg.SpreadsheetID)
	if err != nil {
		logger.Error.Fatalf("sheets client: %v", err)
	}

	classifier, err := ai.NewClassifier(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Error.Fatalf("gemini client: %v", err)
	}

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		logger.Error.Fatalf("telegram api: %v", err)
	}
	logger.Info.Printf("authorized as @%s", api.Self.UserName)

	repos := bot.Repos{
		Venue:    repository.NewVenueRepo(store),
		Bookings: repository.NewBookingRepo(store),
		Events:   repository.NewEventRepo(store),
		Prices:   repository.NewPriceRepo(store),
		Menu:     repository.NewMenuRepo(store),
		Orders:   repository.NewOrderRepo(store),
	}
	tables := repository.NewTableRepo(store)

	ttl := time.Duration(cfg.StateTTLMin) * time.Minute
	avail := availability.NewService(tables, repos.Bookings)
	dlg := dialogue.NewManager(dialogue.NewRedisStore(rdb, ttl), repos.Bookings, avail)
	sessions := session.NewStore(rdb, ttl)

	b := bot.New(api, classifier, dlg, sessions, repos)

	if err := registerWebhook(api, cfg.WebhookURL, cfg.SecretToken); err != nil {
		logger.Error.Fatalf("set webhook: %v", err)
	}

	go queue.StartBookingConsumer()

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterWebhook(e, handler.NewWebhookHandler(b, cfg.SecretToken))

	addr := ":" + cfg.Port
	logger.Info.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		logger.Error.Fatal(err)
	}
}

// registerWebhook points Telegram at our public URL.  The raw API call
// is used because the typed WebhookConfig in the client library predates
// the secret_token parameter.
func registerWebhook(api *tgbotapi.BotAPI, url, secretToken string) error {
	params := tgbotapi.Params{"url": url}
	if secretToken != "" {
		params["secret_token"] = secretToken
	}
	_, err := api.MakeRequest("setWebhook", params)
	return err
}
