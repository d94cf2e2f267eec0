package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies an AppError and decides its HTTP status.
type ErrorKind string

const (
	KindInvalidRequest ErrorKind = "invalid-request"
	KindUnauthorized   ErrorKind = "unauthorized"
	KindForbidden      ErrorKind = "forbidden"
	KindNotFound       ErrorKind = "not-found"
	KindConflict       ErrorKind = "conflict"
	KindServerError    ErrorKind = "server-error"
)

// StatusCode maps the kind onto an HTTP status.
func (k ErrorKind) StatusCode() int {
	switch k {
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// AppError is a rejection with a client-facing message.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func NewInvalidRequest(msg string) error { return &AppError{Kind: KindInvalidRequest, Message: msg} }
func NewUnauthorized(msg string) error   { return &AppError{Kind: KindUnauthorized, Message: msg} }
func NewForbidden(msg string) error      { return &AppError{Kind: KindForbidden, Message: msg} }
func NewNotFound(msg string) error       { return &AppError{Kind: KindNotFound, Message: msg} }
func NewConflict(msg string) error       { return &AppError{Kind: KindConflict, Message: msg} }

// NewServerError wraps an unexpected failure; msg is what the client sees.
func NewServerError(msg string, err error) error {
	return &AppError{Kind: KindServerError, Message: msg, Err: err}
}

// KindOf returns the kind of err, or KindServerError if err is not an AppError.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindServerError
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					StatusCode: http.StatusInternalServerError,
					Message:    "Internal Server Error",
				})
			}
		}()
		c.Next()
	}
}

// RespondError writes err in the error envelope. AppErrors keep their
// message; anything else is logged and reported as a generic 500.
func RespondError(c *gin.Context, err error) {
	logger := GetLogger()
	var appErr *AppError
	if !errors.As(err, &appErr) {
		logger.Error("Unexpected error", zap.String("path", c.FullPath()), zap.Error(err))
		JSONError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if appErr.Kind == KindServerError {
		logger.Error(appErr.Message, zap.String("path", c.FullPath()), zap.Error(appErr.Err))
	} else {
		logger.Debug("Request rejected", zap.String("kind", string(appErr.Kind)), zap.String("message", appErr.Message))
	}
	JSONError(c, appErr.Kind.StatusCode(), appErr.Message)
}
