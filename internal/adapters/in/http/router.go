package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// Options configures the echo instance built by NewEcho.
type Options struct {
	Logger         *zap.Logger
	Verifier       *TokenVerifier
	RateLimit      float64
	RateBurst      int
	AllowedOrigins []string
}

// NewEcho wires the middleware chain and every route of the contract.
//
// Every request gets a request id, an access log line and panic recovery.
// Public routes are rate limited per client IP. Protected routes need a valid
// bearer token, are rate limited per actor and are validated against the
// OpenAPI contract before reaching the handler.
func NewEcho(ctx context.Context, server ServerInterface, opts Options) (*echo.Echo, error) {
	_, contractRouter, err := LoadContract(ctx)
	if err != nil {
		return nil, err
	}
	registerSwaggerDoc()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	e.HTTPErrorHandler = errorHandler(opts.Logger)

	e.Use(requestID())
	e.Use(requestLogger(opts.Logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: opts.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderXRequestID},
	}))

	limiter := rateLimiter(opts.RateLimit, opts.RateBurst)
	RegisterHandlers(e, server, RouteMiddleware{
		Public: []echo.MiddlewareFunc{limiter},
		Protected: []echo.MiddlewareFunc{
			authenticate(opts.Verifier),
			limiter,
			validateRequest(contractRouter),
		},
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
