package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/leanflow/leanflow-go/internal/supabase"
)

type contextKey string

const userIDKey contextKey = "userID"

const bearerPrefix = "bearer "

// Auth returns middleware that verifies the Bearer token from the
// Authorization header against the external identity provider on every
// request. The verified user id is stored in the request context; nothing is
// cached between requests.
func Auth(store *supabase.Lazy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get("Authorization"))
			if token == "" {
				writeJSONError(w, http.StatusUnauthorized, "Missing auth token.")
				return
			}
			if len(token) >= len(bearerPrefix) && strings.EqualFold(token[:len(bearerPrefix)], bearerPrefix) {
				token = strings.TrimSpace(token[len(bearerPrefix):])
			}
			if token == "" {
				writeJSONError(w, http.StatusUnauthorized, "Invalid auth token.")
				return
			}

			client, err := store.Get()
			if err != nil {
				writeJSONError(w, http.StatusInternalServerError, err.Error())
				return
			}

			user, err := client.GetUser(r.Context(), token)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "Invalid auth token.")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext extracts the authenticated user id from the request
// context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
