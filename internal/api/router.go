// Package api serves the tracker operations as a JSON HTTP API.
package api

import (
	"net/http"

	"github.com/julianstephens/hard75/internal/constants"
	"github.com/julianstephens/hard75/internal/tracker"
)

func NewRouter(svc *tracker.Service) http.Handler {
	mux := http.NewServeMux()

	users := NewUserHandler(svc)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /api/auth/login", WithLogging(users.Login))

	mux.HandleFunc("GET /api/user/{username}/settings", WithLogging(users.GetSettings))
	mux.HandleFunc("POST /api/user/{username}/settings", WithLogging(users.UpdateSettings))

	mux.HandleFunc("GET /api/user/{username}/progress", WithLogging(users.GetAllProgress))
	mux.HandleFunc("GET /api/user/{username}/progress/{day}", WithLogging(users.GetProgress))
	mux.HandleFunc("POST /api/user/{username}/progress/{day}", WithLogging(users.UpdateProgress))

	mux.HandleFunc("POST /api/user/{username}/reset", WithLogging(users.Reset))
	mux.HandleFunc("POST /api/user/{username}/check", WithLogging(users.Check))
	mux.HandleFunc("DELETE /api/user/{username}", WithLogging(users.Delete))

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(constants.AppName + " API " + constants.Version))
	})

	return CORS(mux)
}
