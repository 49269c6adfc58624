package middleware

import (
	"net/http"

	"rentora/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// JWTMiddleware validates bearer tokens and stamps the authenticated user
// onto the request context. Tokens missing the sub or role claims leave the
// context unpopulated, which downstream handlers reject as unauthorized.
func JWTMiddleware(jwtSecret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(jwtSecret),
		SigningMethod: "HS256",
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return
			}

			sub, ok := claims["sub"].(string)
			if !ok {
				return
			}
			userID, err := uuid.Parse(sub)
			if err != nil {
				return
			}
			role, ok := claims["role"].(string)
			if !ok || role == "" {
				return
			}

			ctx := common.WithUser(c.Request().Context(), userID, role)
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	})
}
