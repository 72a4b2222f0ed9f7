package middleware

import (
	"context"
	"net/http"

	"library_api/internal/common"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserIDCtxKey   contextKey = "userID"
	UsernameCtxKey contextKey = "username"
)

// Authenticator rejects requests whose bearer token is missing, malformed,
// badly signed or expired, and places the token's identity into the request
// context. jwtauth.Verifier must run earlier in the chain.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())

		if err != nil || token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, common.ErrInvalidToken.Error())
			return
		}

		userID, ok := claims["sub"].(string)
		if !ok || userID == "" {
			common.RespondWithError(w, http.StatusUnauthorized, common.ErrInvalidToken.Error())
			return
		}
		username, _ := claims["name"].(string)

		ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
		ctx = context.WithValue(ctx, UsernameCtxKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext returns the authenticated account id.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

// GetUsernameFromContext returns the authenticated username.
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameCtxKey).(string)
	return username, ok
}
