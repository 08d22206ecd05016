package handler

import (
	"context"
	"crypto/subtle"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/labstack/echo/v4"

	"github.com/KoponovVadim/qrim/internal/logger"
)

// secretTokenHeader is the header Telegram echoes back when the webhook
// was registered with a secret token.
const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// UpdateProcessor is the slice of the bot the webhook needs: process
// one decoded Telegram update to completion.
type UpdateProcessor interface {
	HandleUpdate(ctx context.Context, upd tgbotapi.Update)
}

// WebhookHandler receives Telegram webhook deliveries, verifies the
// secret token and forwards decoded updates to the bot.
type WebhookHandler struct {
	bot         UpdateProcessor
	secretToken string
}

// NewWebhookHandler returns a webhook handler.  An empty secretToken
// disables the header check.
func NewWebhookHandler(bot UpdateProcessor, secretToken string) *WebhookHandler {
	return &WebhookHandler{bot: bot, secretToken: secretToken}
}

// Receive decodes the update and processes it before responding.
// Telegram only needs a 200; bad payloads are answered 200 as well so
// Telegram does not redeliver garbage forever.  A wrong or missing
// secret token gets 401 so foreign callers cannot inject updates.
func (h *WebhookHandler) Receive(c echo.Context) error {
	if h.secretToken != "" {
		got := c.Request().Header.Get(secretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.secretToken)) != 1 {
			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var upd tgbotapi.Update
	if err := c.Bind(&upd); err != nil {
		logger.Error.Errorf("webhook: decode update: %v", err)
		return c.NoContent(http.StatusOK)
	}
	h.bot.HandleUpdate(c.Request().Context(), upd)
	return c.NoContent(http.StatusOK)
}
