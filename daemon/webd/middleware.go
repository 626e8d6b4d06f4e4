package webd

import (
	"log/slog"
	"net/http"
	"os"

	ghandlers "github.com/gorilla/handlers"
)

// tokenAuthenticationMiddleware guards mutating routes with a shared
// token from TRAVELD_TOKEN, accepted as an Authorization bearer header
// or an api_token form value. No token configured means allow all;
// this is a one-operator tool, not a public API.
func tokenAuthenticationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		validToken := os.Getenv("TRAVELD_TOKEN")
		if validToken == "" {
			next.ServeHTTP(w, r)
			return
		}

		token := r.Header.Get("Authorization")
		if token == "Bearer "+validToken {
			next.ServeHTTP(w, r)
			return
		}
		_ = r.ParseForm()
		if r.FormValue("api_token") == validToken {
			next.ServeHTTP(w, r)
			return
		}

		slog.Warn("Invalid token", "method", r.Method, "url", r.URL, "remote", r.RemoteAddr)
		http.Error(w, "Forbidden", http.StatusForbidden)
	})
}

func permissiveCorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Add("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization")
		next.ServeHTTP(w, r)
	})
}

func contentTypeMiddlewareFunc(contentType string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", contentType)
			next.ServeHTTP(w, r)
		})
	}
}

// loggingMiddleware writes Apache combined-format request logs to stdout.
func loggingMiddleware(next http.Handler) http.Handler {
	return ghandlers.CombinedLoggingHandler(os.Stdout, next)
}
