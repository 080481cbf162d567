// Package session consumes the identity provider's bearer tokens. Token
// issuance, sign-up and password flows belong to the provider; this package
// only verifies a token and exposes who is calling.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrNoSession is returned when a request carries no usable token.
var ErrNoSession = errors.New("no session")

// Session identifies the authenticated owner for the duration of a request.
type Session struct {
	OwnerID  uuid.UUID
	Email    string
	Verified bool
}

// Claims is the token payload the identity provider signs. The subject is
// the owner id.
type Claims struct {
	Email    string `json:"email"`
	Verified bool   `json:"email_verified"`
	jwt.RegisteredClaims
}

// Parse verifies an HMAC-signed token and extracts the session.
func Parse(tokenString string, secret []byte) (*Session, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	if !token.Valid {
		return nil, ErrNoSession
	}

	ownerID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("parsing subject: %w", err)
	}

	return &Session{OwnerID: ownerID, Email: claims.Email, Verified: claims.Verified}, nil
}

type ctxKey struct{}

func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// FromContext returns the session the Authenticator middleware stored.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(ctxKey{}).(*Session)
	return sess, ok
}

// Authenticator rejects requests without a valid bearer token and stores the
// session on the request context.
func Authenticator(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			sess, err := Parse(token, secret)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}
