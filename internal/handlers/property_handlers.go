package handlers

import (
	"net/http"
	"time"

	"rentora/internal/common"
	"rentora/internal/services"

	"github.com/labstack/echo/v4"
)

// PropertyHandlers handles landlord property and unit endpoints
type PropertyHandlers struct {
	propertyService services.PropertyService
	tenancyService  services.TenancyService
	ratingService   services.RatingService
}

func NewPropertyHandlers(propertyService services.PropertyService, tenancyService services.TenancyService,
	ratingService services.RatingService) *PropertyHandlers {
	return &PropertyHandlers{
		propertyService: propertyService,
		tenancyService:  tenancyService,
		ratingService:   ratingService,
	}
}

type unitRequest struct {
	UnitNumber string  `json:"unit_number"`
	Type       string  `json:"type"`
	RentAmount float64 `json:"rent_amount"`
}

func validateUnit(req *unitRequest) error {
	if err := common.ValidateRequiredString(req.UnitNumber, "unit_number"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(req.Type, "type"); err != nil {
		return err
	}
	return common.ValidateAmount(req.RentAmount, "rent_amount", 10_000_000)
}

// CreateProperty handles POST /properties
func (h *PropertyHandlers) CreateProperty(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req struct {
		Title       string        `json:"title"`
		Description string        `json:"description"`
		Location    string        `json:"location"`
		Amenities   []string      `json:"amenities"`
		Images      []string      `json:"images"`
		Units       []unitRequest `json:"units"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := common.ValidateRequiredString(req.Title, "title"); err != nil {
		return common.SendValidationError(c, "title", err.Error())
	}
	if err := common.ValidateRequiredString(req.Location, "location"); err != nil {
		return common.SendValidationError(c, "location", err.Error())
	}
	for i := range req.Units {
		if err := validateUnit(&req.Units[i]); err != nil {
			return common.SendValidationError(c, "units", err.Error())
		}
	}

	create := &services.CreatePropertyRequest{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Amenities:   req.Amenities,
		Images:      req.Images,
	}
	for _, u := range req.Units {
		create.Units = append(create.Units, &services.UnitInput{
			UnitNumber: u.UnitNumber,
			Type:       u.Type,
			RentAmount: u.RentAmount,
		})
	}

	property, err := h.propertyService.Create(ctx, userID, create)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, property)
}

// ListMyProperties handles GET /properties
func (h *PropertyHandlers) ListMyProperties(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	properties, err := h.propertyService.ListMine(ctx, userID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, properties)
}

// GetProperty handles GET /properties/:id
func (h *PropertyHandlers) GetProperty(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	role, _ := common.GetUserRoleFromContext(ctx)

	propertyID, err := common.ValidateUUID(c.Param("id"), "property id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	property, err := h.propertyService.GetByID(ctx, propertyID, userID, role)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, property)
}

// UpdateProperty handles PUT /properties/:id
func (h *PropertyHandlers) UpdateProperty(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	propertyID, err := common.ValidateUUID(c.Param("id"), "property id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Location    *string  `json:"location"`
		Amenities   []string `json:"amenities"`
		Images      []string `json:"images"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateOptionalString(req.Title, "title", 200); err != nil {
		return common.SendValidationError(c, "title", err.Error())
	}
	if err := common.ValidateOptionalString(req.Location, "location", 300); err != nil {
		return common.SendValidationError(c, "location", err.Error())
	}

	property, err := h.propertyService.Update(ctx, propertyID, userID, &services.UpdatePropertyRequest{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Amenities:   req.Amenities,
		Images:      req.Images,
	})
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, property)
}

// DeleteProperty handles DELETE /properties/:id
func (h *PropertyHandlers) DeleteProperty(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	role, _ := common.GetUserRoleFromContext(ctx)

	propertyID, err := common.ValidateUUID(c.Param("id"), "property id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.propertyService.Delete(ctx, propertyID, userID, role); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Property deleted"})
}

// AddUnit handles POST /properties/:id/units
func (h *PropertyHandlers) AddUnit(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	propertyID, err := common.ValidateUUID(c.Param("id"), "property id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req unitRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := validateUnit(&req); err != nil {
		return common.SendValidationError(c, "unit", err.Error())
	}

	unit, err := h.propertyService.AddUnit(ctx, propertyID, userID, &services.UnitInput{
		UnitNumber: req.UnitNumber,
		Type:       req.Type,
		RentAmount: req.RentAmount,
	})
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, unit)
}

// SetUnitStatus handles PATCH /properties/:id/units/:unitId/status
func (h *PropertyHandlers) SetUnitStatus(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	propertyID, err := common.ValidateUUID(c.Param("id"), "property id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}
	unitID, err := common.ValidateUUID(c.Param("unitId"), "unit id")
	if err != nil {
		return common.SendValidationError(c, "unitId", err.Error())
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.propertyService.SetUnitStatus(ctx, propertyID, unitID, userID, req.Status); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Unit status updated"})
}

// AssignTenant handles POST /properties/:id/units/:unitId/assign
func (h *PropertyHandlers) AssignTenant(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	propertyID, err := common.ValidateUUID(c.Param("id"), "property id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}
	unitID, err := common.ValidateUUID(c.Param("unitId"), "unit id")
	if err != nil {
		return common.SendValidationError(c, "unitId", err.Error())
	}

	var req struct {
		TenantEmail   string   `json:"tenant_email"`
		StartDate     string   `json:"start_date"`
		EndDate       *string  `json:"end_date"`
		RentAmount    *float64 `json:"rent_amount"`
		DepositAmount *float64 `json:"deposit_amount"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := common.ValidateRequiredString(req.TenantEmail, "tenant_email"); err != nil {
		return common.SendValidationError(c, "tenant_email", err.Error())
	}
	if err := common.ValidateDateFormat(req.StartDate, "start_date"); err != nil {
		return common.SendValidationError(c, "start_date", err.Error())
	}
	if req.EndDate != nil {
		if err := common.ValidateDateFormat(*req.EndDate, "end_date"); err != nil {
			return common.SendValidationError(c, "end_date", err.Error())
		}
	}
	if req.RentAmount != nil {
		if err := common.ValidateAmount(*req.RentAmount, "rent_amount", 10_000_000); err != nil {
			return common.SendValidationError(c, "rent_amount", err.Error())
		}
	}

	startDate := time.Now()
	if req.StartDate != "" {
		startDate, _ = time.Parse("2006-01-02", req.StartDate)
	}
	var endDate *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		parsed, _ := time.Parse("2006-01-02", *req.EndDate)
		if !parsed.After(startDate) {
			return common.SendValidationError(c, "end_date", "end_date must be after start_date")
		}
		endDate = &parsed
	}

	lease, err := h.tenancyService.AssignTenant(ctx, propertyID, unitID, userID, &services.AssignTenantRequest{
		TenantEmail:   req.TenantEmail,
		StartDate:     startDate,
		EndDate:       endDate,
		RentAmount:    req.RentAmount,
		DepositAmount: req.DepositAmount,
	})
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, lease)
}

// GenerateInvite handles POST /properties/:id/units/:unitId/invite
func (h *PropertyHandlers) GenerateInvite(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	propertyID, err := common.ValidateUUID(c.Param("id"), "property id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}
	unitID, err := common.ValidateUUID(c.Param("unitId"), "unit id")
	if err != nil {
		return common.SendValidationError(c, "unitId", err.Error())
	}

	invite, err := h.tenancyService.GenerateInvite(ctx, propertyID, unitID, userID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, invite)
}

// PropertyRatings handles GET /properties/:id/ratings
func (h *PropertyHandlers) PropertyRatings(c echo.Context) error {
	ctx := c.Request().Context()

	propertyID, err := common.ValidateUUID(c.Param("id"), "property id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	ratings, err := h.ratingService.PropertyRatings(ctx, propertyID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, ratings)
}
