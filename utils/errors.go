package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/treenow/treenowbackend/store"
)

// AppError is an error that already knows its HTTP status and the message
// the caller is allowed to see.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func ValidationError(msg string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: msg}
}

func AuthenticationError(msg string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Message: msg}
}

func AuthorizationError(msg string) *AppError {
	return &AppError{Status: http.StatusForbidden, Message: msg}
}

func NotFoundError(msg string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: msg}
}

func ConflictError(msg string) *AppError {
	return &AppError{Status: http.StatusConflict, Message: msg}
}

func InternalError(msg string, err error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Message: msg, Err: err}
}

// RespondError writes err as {"message": ...}. notFound is used when err is
// store.ErrNotFound, so each resource can name itself.
func RespondError(c *gin.Context, err error, notFound string) {
	var appErr *AppError
	switch {
	case errors.As(err, &appErr):
	case errors.Is(err, store.ErrNotFound):
		appErr = NotFoundError(notFound)
	case errors.Is(err, store.ErrVersionConflict):
		appErr = ConflictError("resource was modified concurrently, reload and retry")
	case errors.Is(err, store.ErrDuplicate):
		appErr = ConflictError("resource already exists")
	default:
		appErr = InternalError("Internal Server Error", err)
	}

	if appErr.Status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, appErr)
	}
	c.AbortWithStatusJSON(appErr.Status, gin.H{"message": appErr.Message})
}
