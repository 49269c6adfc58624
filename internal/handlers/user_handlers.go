package handlers

import (
	"net/http"

	"rentora/internal/common"
	"rentora/internal/services"

	"github.com/labstack/echo/v4"
)

const maxVerificationDocSize = 10 << 20 // 10 MiB

// UserHandlers handles profile and verification document endpoints
type UserHandlers struct {
	userService services.UserService
}

func NewUserHandlers(userService services.UserService) *UserHandlers {
	return &UserHandlers{userService: userService}
}

// Me handles GET /users/me
func (h *UserHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	user, err := h.userService.Me(ctx, userID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT /users/me
func (h *UserHandlers) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req struct {
		Name  *string `json:"name"`
		Phone *string `json:"phone"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateOptionalString(req.Name, "name", 100); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if err := common.ValidateOptionalString(req.Phone, "phone", 20); err != nil {
		return common.SendValidationError(c, "phone", err.Error())
	}

	user, err := h.userService.UpdateProfile(ctx, userID, &services.UpdateProfileRequest{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// SubmitVerificationDoc handles POST /users/me/verification (multipart)
func (h *UserHandlers) SubmitVerificationDoc(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		return common.SendValidationError(c, "document", "document file is required")
	}
	if fileHeader.Size > maxVerificationDocSize {
		return common.SendValidationError(c, "document", "document exceeds the 10MB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read uploaded document")
	}
	defer file.Close()

	objectName, err := h.userService.SubmitVerificationDoc(ctx, userID, fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"), file, fileHeader.Size)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"object_name": objectName})
}

// VerificationDocURL handles GET /users/me/verification/url?object=...
func (h *UserHandlers) VerificationDocURL(c echo.Context) error {
	ctx := c.Request().Context()
	if _, ok := common.GetUserIDFromContext(ctx); !ok {
		return common.SendUnauthorizedError(c)
	}

	objectName := c.QueryParam("object")
	if err := common.ValidateRequiredString(objectName, "object"); err != nil {
		return common.SendValidationError(c, "object", err.Error())
	}

	url, err := h.userService.VerificationDocURL(ctx, objectName)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
