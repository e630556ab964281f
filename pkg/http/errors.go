package http

import (
	"errors"
	"fmt"
	"net/http"

	"TradeMind/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Error codes carried in AppError.Code.
const (
	CodeNotFound        = "ERR_NOT_FOUND"
	CodeBadRequest      = "ERR_BAD_REQUEST"
	CodeTooManyRequests = "ERR_TOO_MANY_REQUESTS"
	CodeInternal        = "ERR_INTERNAL"
)

// AppError is an error a handler wants shown to the client as-is, with the
// status it should be served under. Err stays server side.
type AppError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Field   string                 `json:"field,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Status  int                    `json:"-"`
	Err     error                  `json:"-"`
}

func newAppError(status int, code, msg string) *AppError {
	return &AppError{Code: code, Message: msg, Status: status}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) WithParam(key string, value interface{}) *AppError {
	if e.Params == nil {
		e.Params = map[string]interface{}{}
	}
	e.Params[key] = value
	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

func NotFoundError(msg string) *AppError {
	return newAppError(http.StatusNotFound, CodeNotFound, msg)
}

func NotFoundErrorf(format string, a ...interface{}) *AppError {
	return NotFoundError(fmt.Sprintf(format, a...))
}

func BadRequestError(msg string) *AppError {
	return newAppError(http.StatusBadRequest, CodeBadRequest, msg)
}

func TooManyRequestsError(msg string) *AppError {
	return newAppError(http.StatusTooManyRequests, CodeTooManyRequests, msg)
}

func InternalError(msg string) *AppError {
	return newAppError(http.StatusInternalServerError, CodeInternal, msg)
}

// ErrorHandler renders whatever a handler or middleware returned in the
// APIResponse envelope. Echo's own errors, such as unknown routes, keep
// their status.
func ErrorHandler(l *logger.Logger) echo.HTTPErrorHandler {
	if l == nil {
		l = logger.Nop()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var (
			appErr *AppError
			he     *echo.HTTPError
		)
		switch {
		case errors.As(err, &appErr):
		case errors.As(err, &he):
			appErr = newAppError(he.Code, fmt.Sprintf("ERR_HTTP_%d", he.Code), fmt.Sprint(he.Message))
			if he.Code >= http.StatusInternalServerError {
				appErr.Message = http.StatusText(he.Code)
			}
		default:
			appErr = InternalError("Something went wrong").WithError(err)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(appErr.Status)
		} else {
			werr = AppErrorResponse(c, appErr)
		}
		if werr != nil {
			l.Warn("write error response", logger.Error(werr), logger.String("uri", c.Request().RequestURI))
		}
	}
}
