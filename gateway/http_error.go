package gateway

import (
	goerrors "errors"
	"net/http"

	"imobiliare/errors"

	"github.com/gin-gonic/gin"
)

func httpStatus(err error) int {
	switch {
	case goerrors.Is(err, errors.ErrUnauthenticated),
		goerrors.Is(err, errors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case goerrors.Is(err, errors.ErrForbidden):
		return http.StatusForbidden
	case goerrors.Is(err, errors.ErrNotFound):
		return http.StatusNotFound
	case goerrors.Is(err, errors.ErrInvalidParticipants),
		goerrors.Is(err, errors.ErrInvalidBody),
		goerrors.Is(err, errors.ErrInvalidPassword):
		return http.StatusBadRequest
	case goerrors.Is(err, errors.ErrUserAlreadyExists):
		return http.StatusConflict
	case goerrors.Is(err, errors.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError translates a service error into the HTTP response.
// Server-side failures get a generic body so storage details never
// reach the client.
func abortWithError(c *gin.Context, err error) {
	status := httpStatus(err)
	body := err.Error()
	if status >= http.StatusInternalServerError {
		body = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": body})
}
