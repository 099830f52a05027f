package web

import (
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/pagewatch/pagewatch/internal/config"
)

// BasicAuth guards operational endpoints with HTTP basic auth. The password
// is checked against the bcrypt hash from the config file.
func BasicAuth(auth config.AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok || !credentialsValid(auth, username, password) {
				slog.Warn("unauthorized request", "path", r.URL.Path, "remote", r.RemoteAddr)
				w.Header().Set("WWW-Authenticate", `Basic realm="pagewatch"`)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func credentialsValid(auth config.AuthConfig, username, password string) bool {
	if username != auth.Username {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(auth.PasswordHash), []byte(password)) == nil
}
