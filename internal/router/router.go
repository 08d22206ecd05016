// Package router defines how HTTP routes are registered for the service.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/KoponovVadim/qrim/internal/handler"
)

// RegisterRoutes registers the health check on the provided Echo
// instance.  This endpoint can be used by load balancers or monitoring
// systems to verify that the service is up and running.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterWebhook registers the Telegram webhook endpoint.  All guest
// traffic arrives here; the handler itself enforces the secret token.
func RegisterWebhook(e *echo.Echo, w *handler.WebhookHandler) {
	e.POST("/webhook", w.Receive)
}
