// Package api exposes the launcher's operations over HTTP plus a websocket
// event stream. The CLI (pkg/sdk) is the primary client.
package api

import (
	"net/http"

	"palauncher/internal/app"
	"palauncher/internal/config"
	"palauncher/internal/install"
	"palauncher/internal/runner"
	"palauncher/internal/update"
	"palauncher/internal/ws"

	"palauncher/internal/domain"
)

type Server struct {
	DataDir    string
	Resolver   *install.Resolver
	Updater    *update.Orchestrator
	Supervisor *runner.Supervisor
	Hub        *ws.Hub
	Store      domain.UpdateRepository

	// shutdown terminates the daemon after the exit operation; swapped out
	// in tests.
	shutdown func()
}

func NewAPIServer(container *app.Container, shutdown func()) *Server {
	return &Server{
		DataDir:    container.DataDir,
		Resolver:   container.Resolver,
		Updater:    container.Updater,
		Supervisor: container.Supervisor,
		Hub:        container.Hub,
		Store:      container.Store,
		shutdown:   shutdown,
	}
}

func (api *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /install", api.handleInstall)
	mux.HandleFunc("GET /status", api.handleStatus)
	mux.HandleFunc("GET /version", api.handleVersion)
	mux.HandleFunc("GET /launcher-version", api.handleLauncherVersion)
	mux.HandleFunc("GET /launcher-update", api.handleLauncherUpdate)
	mux.HandleFunc("POST /reset", api.handleReset)

	mux.HandleFunc("POST /server/start", api.handleStart)
	mux.HandleFunc("POST /server/stop", api.handleStop)
	mux.HandleFunc("POST /server/restart", api.handleRestart)
	mux.HandleFunc("POST /exit", api.handleExit)

	mux.HandleFunc("GET /local-ip", api.handleLocalIP)
	mux.HandleFunc("POST /open-url", api.handleOpenURL)
	mux.HandleFunc("GET /updates/history", api.handleUpdateHistory)

	mux.HandleFunc("GET /ws/events", api.Hub.ServeWs)

	return api.corsMiddleware(mux)
}

func (api *Server) Start(listenAddr string) error {
	return http.ListenAndServe(listenAddr, api.Handler())
}

func (api *Server) zipURL() string {
	return config.ZipURL(api.DataDir)
}

func (api *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
