package middleware

import (
	"strings"

	"cafe-ordering/apperr"
	"cafe-ordering/helpers"

	"github.com/gin-gonic/gin"
)

const (
	KeyUID   = "uid"
	KeyEmail = "email"
	KeyName  = "name"
	KeyRole  = "role"
)

// Authentication accepts the session token from the token header or an
// Authorization bearer header. Browsers cannot set headers on a websocket
// handshake, so a token query parameter is accepted as a last resort.
func Authentication(tokens *helpers.TokenMaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientToken := c.Request.Header.Get("token")
		if clientToken == "" {
			clientToken = strings.TrimSpace(strings.TrimPrefix(c.Request.Header.Get("Authorization"), "Bearer "))
		}
		if clientToken == "" {
			clientToken = c.Query("token")
		}
		if clientToken == "" {
			helpers.RespondError(c, apperr.ErrUnauthenticated)
			return
		}
		claims, err := tokens.ValidateToken(clientToken)
		if err != nil {
			LoggerFrom(c).Debug().Err(err).Msg("rejected session token")
			helpers.RespondError(c, apperr.ErrUnauthenticated)
			return
		}
		c.Set(KeyEmail, claims.Email)
		c.Set(KeyName, claims.Name)
		c.Set(KeyUID, claims.Uid)
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}

// UserID returns the authenticated staff id, or "" outside Authentication.
func UserID(c *gin.Context) string {
	return c.GetString(KeyUID)
}
