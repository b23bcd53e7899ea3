package helpers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cafe-ordering/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenMaker("secret", time.Hour)
	token, refresh, err := m.GenerateAllTokens("staff@cafe.test", "Asha", "u1", "WAITER")
	require.NoError(t, err)
	assert.NotEqual(t, token, refresh)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Uid)
	assert.Equal(t, "WAITER", claims.Role)

	_, err = m.ValidateToken(refresh)
	assert.Error(t, err, "refresh token carries no session identity")
}

func TestTokenRejectsOtherSecretAndExpiry(t *testing.T) {
	m := NewTokenMaker("secret", time.Hour)
	token, _, err := m.GenerateAllTokens("staff@cafe.test", "Asha", "u1", "ADMIN")
	require.NoError(t, err)

	_, err = NewTokenMaker("other", time.Hour).ValidateToken(token)
	assert.Error(t, err)

	expired := NewTokenMaker("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.GenerateAllTokens("staff@cafe.test", "Asha", "u1", "ADMIN")
	require.NoError(t, err)
	_, err = m.ValidateToken(old)
	assert.Error(t, err)

	_, err = m.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswords(t *testing.T) {
	PasswordCost = bcrypt.MinCost
	hash, err := HashPassword("dummy@123")
	require.NoError(t, err)

	assert.NoError(t, VerifyPassword("dummy@123", hash))
	assert.ErrorIs(t, VerifyPassword("wrong", hash), ErrBadCredentials)
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err    error
		status int
	}{
		{apperr.ErrEmptyCart, http.StatusBadRequest},
		{apperr.ErrUnauthenticated, http.StatusUnauthorized},
		{apperr.NotFoundf("op", "order was not found"), http.StatusNotFound},
		{apperr.Remote("op", errors.New("timeout")), http.StatusBadGateway},
		{errors.New("bug"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		RespondError(c, tc.err)

		assert.Equal(t, tc.status, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tc.err.Error(), body["error"])
		if tc.status == http.StatusUnauthorized {
			assert.Equal(t, LoginPath, body["redirect"])
		}
	}
}
