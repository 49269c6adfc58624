package handlers

import (
	"net/http"
	"strings"

	"rentora/internal/common"
	"rentora/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles registration, login and token lifecycle endpoints
type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// Register handles POST /auth/register
func (h *AuthHandlers) Register(c echo.Context) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
		Phone    string `json:"phone"`
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
	if len(req.Password) < 8 {
		return common.SendValidationError(c, "password", "password must be at least 8 characters")
	}

	user, err := h.authService.Register(c.Request().Context(), &services.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
	})
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

// Login handles POST /auth/login
func (h *AuthHandlers) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Email == "" || req.Password == "" {
		return common.SendValidationError(c, "credentials", "email and password are required")
	}

	tokens, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, tokens)
}

// Refresh handles POST /auth/refresh
func (h *AuthHandlers) Refresh(c echo.Context) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.RefreshToken == "" {
		return common.SendValidationError(c, "refresh_token", "refresh_token is required")
	}

	tokens, err := h.authService.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, tokens)
}

// Logout handles POST /auth/logout
func (h *AuthHandlers) Logout(c echo.Context) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if req.RefreshToken != "" {
		if err := h.authService.Logout(c.Request().Context(), req.RefreshToken); err != nil {
			return common.RespondError(c, err)
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
}
