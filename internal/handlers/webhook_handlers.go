package handlers

import (
	"io"
	"net/http"

	"rentora/internal/common"
	"rentora/internal/services"

	"github.com/labstack/echo/v4"
)

// WebhookHandlers handles provider callbacks
type WebhookHandlers struct {
	paymentService services.PaymentService
}

func NewWebhookHandlers(paymentService services.PaymentService) *WebhookHandlers {
	return &WebhookHandlers{paymentService: paymentService}
}

// DarajaCallback handles POST /webhooks/daraja. Daraja expects a zero
// ResultCode acknowledgement regardless of how we processed the payment.
func (h *WebhookHandlers) DarajaCallback(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return common.SendClientError(c, "Failed to read callback body")
	}

	if err := h.paymentService.HandleCallback(c.Request().Context(), body); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"ResultCode": 0,
		"ResultDesc": "Accepted",
	})
}
