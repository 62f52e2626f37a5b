package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/runclub/runtrack/internal/api/response"
	"github.com/runclub/runtrack/internal/domain"
	"github.com/runclub/runtrack/internal/service"
)

type contextKey string

const userKey contextKey = "user"

// Auth validates the bearer session token and loads the user row before any
// controller runs. Every rejection is a 401 with a distinguishing message:
// missing header, bad signature, expired token, or unknown user.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				response.Error(w, http.StatusUnauthorized, response.ErrTokenRequired)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")

			userID, err := authService.ValidateToken(token)
			if err != nil {
				if errors.Is(err, service.ErrTokenExpired) {
					response.Error(w, http.StatusUnauthorized, response.ErrTokenExpired)
					return
				}
				response.Error(w, http.StatusUnauthorized, response.ErrTokenInvalid)
				return
			}

			user, err := authService.GetUserByID(r.Context(), userID)
			if err != nil {
				if !errors.Is(err, domain.ErrUserNotFound) {
					log.Error().Err(err).Stringer("user_id", userID).Msg("auth middleware user lookup failed")
				}
				response.Error(w, http.StatusUnauthorized, response.ErrUserNotFound)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the authenticated user attached by Auth.
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}
