package handlers

import (
	"net/http"
	"strconv"

	"rentora/internal/common"
	"rentora/internal/services"

	"github.com/labstack/echo/v4"
)

// AdminHandlers handles the admin review and platform management endpoints
type AdminHandlers struct {
	propertyService services.PropertyService
	userService     services.UserService
}

func NewAdminHandlers(propertyService services.PropertyService, userService services.UserService) *AdminHandlers {
	return &AdminHandlers{propertyService: propertyService, userService: userService}
}

func paginationParams(c echo.Context) (int, int) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	return common.ValidatePaginationParams(limit, offset)
}

// PendingProperties handles GET /admin/properties/pending
func (h *AdminHandlers) PendingProperties(c echo.Context) error {
	limit, offset := paginationParams(c)
	properties, err := h.propertyService.ListPending(c.Request().Context(), limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, properties)
}

// AllProperties handles GET /admin/properties
func (h *AdminHandlers) AllProperties(c echo.Context) error {
	limit, offset := paginationParams(c)
	properties, err := h.propertyService.ListAll(c.Request().Context(), limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, properties)
}

// ReviewProperty handles PATCH /admin/properties/:id/status
func (h *AdminHandlers) ReviewProperty(c echo.Context) error {
	ctx := c.Request().Context()
	adminID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	propertyID, err := common.ValidateUUID(c.Param("id"), "property id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidatePropertyStatus(req.Status); err != nil {
		return common.SendValidationError(c, "status", err.Error())
	}

	property, err := h.propertyService.UpdateStatus(ctx, propertyID, adminID, req.Status)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, property)
}

// Stats handles GET /admin/stats
func (h *AdminHandlers) Stats(c echo.Context) error {
	stats, err := h.propertyService.Stats(c.Request().Context())
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// ListUsers handles GET /admin/users
func (h *AdminHandlers) ListUsers(c echo.Context) error {
	limit, offset := paginationParams(c)
	users, err := h.userService.ListUsers(c.Request().Context(), limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser handles POST /admin/users
func (h *AdminHandlers) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	adminID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

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
	if req.Name == "" || req.Email == "" {
		return common.SendValidationError(c, "name", "Name and email are required")
	}
	if len(req.Password) < 8 {
		return common.SendValidationError(c, "password", "Password must be at least 8 characters")
	}

	user, err := h.userService.CreateUser(ctx, adminID, &services.AdminCreateUserRequest{
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

// UpdateUser handles PUT /admin/users/:id
func (h *AdminHandlers) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()
	adminID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	userID, err := common.ValidateUUID(c.Param("id"), "user id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req struct {
		Name     *string `json:"name"`
		Phone    *string `json:"phone"`
		Role     *string `json:"role"`
		Password *string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Password != nil && len(*req.Password) < 8 {
		return common.SendValidationError(c, "password", "Password must be at least 8 characters")
	}

	user, err := h.userService.UpdateUser(ctx, adminID, userID, &services.AdminUpdateUserRequest{
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// ReviewVerification handles PATCH /admin/users/:id/verification
func (h *AdminHandlers) ReviewVerification(c echo.Context) error {
	ctx := c.Request().Context()
	adminID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	userID, err := common.ValidateUUID(c.Param("id"), "user id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req struct {
		Approve bool `json:"approve"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.userService.ReviewVerification(ctx, adminID, userID, req.Approve); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Verification reviewed"})
}

// SetUserStatus handles PATCH /admin/users/:id/status
func (h *AdminHandlers) SetUserStatus(c echo.Context) error {
	ctx := c.Request().Context()
	adminID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	userID, err := common.ValidateUUID(c.Param("id"), "user id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateUserStatus(req.Status); err != nil {
		return common.SendValidationError(c, "status", err.Error())
	}

	if err := h.userService.SetStatus(ctx, adminID, userID, req.Status); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User status updated"})
}

// DeleteUser handles DELETE /admin/users/:id
func (h *AdminHandlers) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	adminID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	userID, err := common.ValidateUUID(c.Param("id"), "user id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.userService.DeleteUser(ctx, adminID, userID); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted"})
}
