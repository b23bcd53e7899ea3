package helpers

import (
	"net/http"

	"cafe-ordering/apperr"

	"github.com/gin-gonic/gin"
)

const LoginPath = "/users/login"

func StatusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.Validation:
		return http.StatusBadRequest
	case apperr.Unauthenticated:
		return http.StatusUnauthorized
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.RemoteOperation:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err with the status of its kind and aborts the
// handler chain. Unauthenticated responses carry the login path to
// redirect to.
func RespondError(c *gin.Context, err error) {
	status := StatusFor(err)
	body := gin.H{"error": err.Error(), "kind": apperr.KindOf(err).String()}
	if status == http.StatusUnauthorized {
		body["redirect"] = LoginPath
	}
	c.AbortWithStatusJSON(status, body)
}
