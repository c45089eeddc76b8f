package httpx

import (
	"context"
	"net/http"
	"strconv"
)

type ctxKey int

const userIDKey ctxKey = 0

// RequireUser trusts the numeric X-User-ID header installed by the
// authentication layer in front of this service.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.Header.Get("X-User-ID"), 10, 64)
		if err != nil || id <= 0 {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "user not authenticated"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, id)))
	})
}

func userID(r *http.Request) int64 {
	id, _ := r.Context().Value(userIDKey).(int64)
	return id
}
