package router

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	apperrors "inkwell/internal/errors"
	"inkwell/internal/handler"
	ratelimit "inkwell/internal/middleware"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userHandler *handler.UserHandler,
	blogHandler *handler.BlogHandler,
	profileHandler *handler.ProfileHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.HTTPErrorHandler = httpErrorHandler

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public routes; signup/signin sit behind a per-IP limiter.
	authLimiter := ratelimit.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)
	api.POST("/user/signup", userHandler.Signup, authLimiter.Middleware())
	api.POST("/user/signin", userHandler.Signin, authLimiter.Middleware())
	api.GET("/profile/:id", profileHandler.GetPublicProfile)

	// Secured routes. Every token failure - absent header, wrong scheme,
	// malformed payload, bad signature, expiry - collapses to the same
	// generic 401 so callers learn nothing about the cause.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Message: "unauthorized",
				Code:    "UNAUTHORIZED",
			})
		},
	}))

	secured.GET("/user/verifyToken", userHandler.VerifyToken)

	secured.GET("/blog/bulk", blogHandler.ListPublished)
	secured.GET("/blog/:id", blogHandler.GetPost)
	secured.POST("/blog", blogHandler.CreatePost)
	secured.PUT("/blog", blogHandler.UpdatePost)
	secured.PATCH("/blog/publish", blogHandler.PublishPost)
	secured.DELETE("/blog/:id", blogHandler.DeletePost)

	secured.GET("/profile/me", profileHandler.GetOwnProfile)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// httpErrorHandler renders every error as the {success:false} envelope and
// keeps internal detail out of responses.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	resp := apperrors.ErrorResponse{
		Message: "internal server error",
		Code:    "INTERNAL_ERROR",
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		switch m := he.Message.(type) {
		case apperrors.ErrorResponse:
			resp = m
		case string:
			resp = apperrors.ErrorResponse{Message: m}
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, resp)
}
