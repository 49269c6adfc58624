package handlers

import (
	"net/http"
	"time"

	"rentora/internal/common"
	"rentora/internal/services"

	"github.com/labstack/echo/v4"
)

// TenantHandlers handles the tenant-facing lease, rating and payment
// endpoints
type TenantHandlers struct {
	leaseService   services.LeaseService
	tenancyService services.TenancyService
	ratingService  services.RatingService
	paymentService services.PaymentService
}

func NewTenantHandlers(leaseService services.LeaseService, tenancyService services.TenancyService,
	ratingService services.RatingService, paymentService services.PaymentService) *TenantHandlers {
	return &TenantHandlers{
		leaseService:   leaseService,
		tenancyService: tenancyService,
		ratingService:  ratingService,
		paymentService: paymentService,
	}
}

// MyLease handles GET /tenant/lease
func (h *TenantHandlers) MyLease(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	lease, err := h.leaseService.MyLease(ctx, userID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, lease)
}

// MyLeases handles GET /tenant/leases
func (h *TenantHandlers) MyLeases(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	leases, err := h.leaseService.MyLeases(ctx, userID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, leases)
}

// RedeemInvite handles POST /tenant/invites/redeem
func (h *TenantHandlers) RedeemInvite(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req struct {
		InviteCode string `json:"invite_code"`
		StartDate  string `json:"start_date"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.InviteCode, "invite_code"); err != nil {
		return common.SendValidationError(c, "invite_code", err.Error())
	}
	if err := common.ValidateDateFormat(req.StartDate, "start_date"); err != nil {
		return common.SendValidationError(c, "start_date", err.Error())
	}

	startDate := time.Now()
	if req.StartDate != "" {
		startDate, _ = time.Parse("2006-01-02", req.StartDate)
	}

	lease, err := h.tenancyService.RedeemInvite(ctx, req.InviteCode, userID, startDate)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, lease)
}

// CreateRating handles POST /tenant/ratings
func (h *TenantHandlers) CreateRating(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req struct {
		PropertyID string  `json:"property_id"`
		Rating     int     `json:"rating"`
		Review     *string `json:"review"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	propertyID, err := common.ValidateUUID(req.PropertyID, "property_id")
	if err != nil {
		return common.SendValidationError(c, "property_id", err.Error())
	}
	if err := common.ValidateRating(req.Rating); err != nil {
		return common.SendValidationError(c, "rating", err.Error())
	}
	if err := common.ValidateOptionalString(req.Review, "review", 500); err != nil {
		return common.SendValidationError(c, "review", err.Error())
	}

	rating, err := h.ratingService.Create(ctx, userID, propertyID, req.Rating, req.Review)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, rating)
}

// MyRatings handles GET /tenant/ratings
func (h *TenantHandlers) MyRatings(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	ratings, err := h.ratingService.MyRatings(ctx, userID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, ratings)
}

// RateableProperties handles GET /tenant/ratings/available
func (h *TenantHandlers) RateableProperties(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	properties, err := h.ratingService.AvailableToRate(ctx, userID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, properties)
}

// PayRent handles POST /tenant/payments
func (h *TenantHandlers) PayRent(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req struct {
		Amount      float64 `json:"amount"`
		PhoneNumber string  `json:"phone_number"`
		PaymentType string  `json:"payment_type"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.PhoneNumber, "phone_number"); err != nil {
		return common.SendValidationError(c, "phone_number", err.Error())
	}
	if req.Amount != 0 {
		if err := common.ValidateAmount(req.Amount, "amount", 10_000_000); err != nil {
			return common.SendValidationError(c, "amount", err.Error())
		}
	}

	payment, err := h.paymentService.PayRent(ctx, userID, &services.PayRentRequest{
		Amount:      req.Amount,
		PhoneNumber: req.PhoneNumber,
		PaymentType: req.PaymentType,
	})
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, payment)
}

// MyPayments handles GET /tenant/payments
func (h *TenantHandlers) MyPayments(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	payments, err := h.paymentService.MyPayments(ctx, userID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, payments)
}
