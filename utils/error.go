package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorCode classifies application failures for transport mapping.
type ErrorCode string

const (
	CodeNotFound     ErrorCode = "notFound"
	CodeUnauthorized ErrorCode = "unauthorized"
	CodeInvalidState ErrorCode = "invalidState"
	CodeValidation   ErrorCode = "validationError"
)

// AppError is a classified failure surfaced to the caller verbatim.
// Anything that is not an AppError is treated as an internal fault and
// reported opaquely.
type AppError struct {
	Code    ErrorCode
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NotFoundError(msg string) error {
	return &AppError{Code: CodeNotFound, Message: msg}
}

func UnauthorizedError(msg string) error {
	return &AppError{Code: CodeUnauthorized, Message: msg}
}

func InvalidStateError(msg string) error {
	return &AppError{Code: CodeInvalidState, Message: msg}
}

func ValidationError(msg string) error {
	return &AppError{Code: CodeValidation, Message: msg}
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func httpStatus(code ErrorCode) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeInvalidState:
		return http.StatusConflict
	case CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// RespondError maps an error to its HTTP status and writes a JSON body.
// Unclassified errors are logged and reported as an opaque server fault.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(httpStatus(appErr.Code), ErrorResponse{Message: appErr.Message})
		return
	}
	GetLogger().Error("internal error", zap.Error(err), zap.String("path", c.FullPath()))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal Server Error"})
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}
