package handlers

import (
	"net/http"
	"strings"

	"rentora/internal/common"
	"rentora/internal/services"

	"github.com/labstack/echo/v4"
)

// ContactHandlers handles the public contact form
type ContactHandlers struct {
	notifier services.NotificationService
}

func NewContactHandlers(notifier services.NotificationService) *ContactHandlers {
	return &ContactHandlers{notifier: notifier}
}

// Submit handles POST /contact
func (h *ContactHandlers) Submit(c echo.Context) error {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if err := common.ValidateRequiredString(req.Email, "email"); err != nil {
		return common.SendValidationError(c, "email", err.Error())
	}
	if !strings.Contains(req.Email, "@") {
		return common.SendValidationError(c, "email", "email is not valid")
	}
	if err := common.ValidateRequiredString(req.Message, "message"); err != nil {
		return common.SendValidationError(c, "message", err.Error())
	}

	h.notifier.SendContactMessage(c.Request().Context(), req.Name, req.Email, req.Message)
	return c.JSON(http.StatusOK, map[string]string{"message": "Message sent"})
}
