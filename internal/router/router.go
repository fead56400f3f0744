package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"nestcloud/internal/config"
	"nestcloud/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	fileHandler *handler.FileHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.GET("/me", func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		claims, _ := token.Claims.(jwt.MapClaims)
		return c.JSON(http.StatusOK, echo.Map{"token_claims": claims})
	})

	// File routes. The upload cap is enforced before ingestion begins;
	// an oversized body gets a 413 instead of a server error.
	secured.GET("/files", fileHandler.List)
	secured.POST("/files", fileHandler.Upload, middleware.BodyLimit(cfg.MaxUploadSize))
	secured.GET("/files/:id/download", fileHandler.Download)
	secured.GET("/files/:id/preview", fileHandler.Preview)
	secured.PATCH("/files/:id", fileHandler.Rename)
	secured.DELETE("/files/:id", fileHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
