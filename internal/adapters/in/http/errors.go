package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"grameego/internal/pkg/errs"
	"grameego/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

const serverErrorMessage = "Server error"

// statusFor maps the error taxonomy to an HTTP status and a client message.
// Anything outside the taxonomy is a store or programming error and is not
// described to the client.
func statusFor(err error) (int, string) {
	var (
		notFound   *errs.ObjectNotFoundError
		permission *errs.PermissionDeniedError
		conflict   *errs.ConflictError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound, notFoundMessage(notFound)
	case errs.IsValidation(err):
		return http.StatusBadRequest, strings.ReplaceAll(err.Error(), "\n", "; ")
	case errors.As(err, &permission):
		return http.StatusForbidden, capitalize(permission.Reason)
	case errors.As(err, &conflict):
		return http.StatusConflict, capitalize(conflict.Reason)
	}
	return http.StatusInternalServerError, serverErrorMessage
}

func notFoundMessage(e *errs.ObjectNotFoundError) string {
	if e.ParamName == "" {
		return "Not found"
	}
	return capitalize(e.ParamName) + " not found"
}

// writeError renders err. Server errors are logged with the request id.
func writeError(c echo.Context, err error) error {
	status, message := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.FromCtx(c.Request().Context()).Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("route", c.Path()),
			zap.Error(err),
		)
	}
	return c.JSON(status, Error{Code: status, Message: message})
}

// errorHandler renders errors returned by middleware and the router
// (unknown route, rate limit, token, contract validation) in the same shape
// as handler errors.
func errorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			if werr := writeError(c, err); werr != nil {
				log.Warn("failed to write error response", zap.Error(werr))
			}
			return
		}

		message := serverErrorMessage
		if he.Code < http.StatusInternalServerError {
			message = capitalize(fmt.Sprint(he.Message))
		} else {
			logger.FromCtx(c.Request().Context()).Error("request failed", zap.Error(err))
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(he.Code)
		} else {
			werr = c.JSON(he.Code, Error{Code: he.Code, Message: message})
		}
		if werr != nil {
			log.Warn("failed to write error response", zap.Error(werr))
		}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
