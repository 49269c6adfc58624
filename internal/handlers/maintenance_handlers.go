package handlers

import (
	"net/http"

	"rentora/internal/common"
	"rentora/internal/services"

	"github.com/labstack/echo/v4"
)

// MaintenanceHandlers handles maintenance request endpoints for tenants and
// landlords
type MaintenanceHandlers struct {
	maintenanceService services.MaintenanceService
}

func NewMaintenanceHandlers(maintenanceService services.MaintenanceService) *MaintenanceHandlers {
	return &MaintenanceHandlers{maintenanceService: maintenanceService}
}

// CreateRequest handles POST /tenant/maintenance
func (h *MaintenanceHandlers) CreateRequest(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req struct {
		Issue       string  `json:"issue"`
		Description *string `json:"description"`
		Priority    string  `json:"priority"`
		PhotoURL    *string `json:"photo_url"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Issue, "issue"); err != nil {
		return common.SendValidationError(c, "issue", err.Error())
	}
	if req.Priority != "" {
		if err := common.ValidateMaintenancePriority(req.Priority); err != nil {
			return common.SendValidationError(c, "priority", err.Error())
		}
	}
	if err := common.ValidateOptionalString(req.Description, "description", 2000); err != nil {
		return common.SendValidationError(c, "description", err.Error())
	}

	request, err := h.maintenanceService.Create(ctx, userID, &services.CreateMaintenanceRequest{
		Issue:       req.Issue,
		Description: req.Description,
		Priority:    req.Priority,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, request)
}

// MyRequests handles GET /tenant/maintenance
func (h *MaintenanceHandlers) MyRequests(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	requests, err := h.maintenanceService.MyRequests(ctx, userID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, requests)
}

// LandlordRequests handles GET /landlord/maintenance
func (h *MaintenanceHandlers) LandlordRequests(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	requests, err := h.maintenanceService.LandlordRequests(ctx, userID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, requests)
}

// UpdateStatus handles PATCH /landlord/maintenance/:id/status
func (h *MaintenanceHandlers) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	requestID, err := common.ValidateUUID(c.Param("id"), "request id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateMaintenanceStatus(req.Status); err != nil {
		return common.SendValidationError(c, "status", err.Error())
	}

	if err := h.maintenanceService.UpdateStatus(ctx, requestID, userID, req.Status); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Maintenance request updated"})
}
