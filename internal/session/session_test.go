package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajwalsh/piggy/internal/session"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, ownerID uuid.UUID, secret []byte) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, session.Claims{
		Email:    "a@example.com",
		Verified: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ownerID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	signed, err := token.SignedString(secret)
	require.NoError(t, err)

	return signed
}

func TestParse(t *testing.T) {
	ownerID := uuid.New()

	t.Run("Valid", func(t *testing.T) {
		sess, err := session.Parse(signToken(t, ownerID, testSecret), testSecret)
		require.NoError(t, err)
		assert.Equal(t, ownerID, sess.OwnerID)
		assert.Equal(t, "a@example.com", sess.Email)
		assert.True(t, sess.Verified)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		_, err := session.Parse(signToken(t, ownerID, []byte("other")), testSecret)
		assert.Error(t, err)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := session.Parse("not-a-token", testSecret)
		assert.Error(t, err)
	})
}

func TestAuthenticator(t *testing.T) {
	ownerID := uuid.New()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, ownerID, sess.OwnerID)
		w.WriteHeader(http.StatusOK)
	})

	handler := session.Authenticator(testSecret)(next)

	t.Run("MissingHeader", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer junk")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ValidToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, ownerID, testSecret))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
