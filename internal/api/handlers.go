package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/browser"

	"palauncher/internal/domain"
	"palauncher/internal/runner"
	"palauncher/internal/updater"
	"palauncher/internal/version"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (api *Server) handleInstall(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Force bool `json:"force"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	root, err := api.Updater.EnsureInstalled(req.Force)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"path": root})
}

func (api *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := domain.Status{ZipURL: api.zipURL()}

	root, err := api.Resolver.Root()
	if err != nil {
		status.Path = err.Error()
	} else {
		status.Ready = true
		status.Path = root
	}

	writeJSON(w, status)
}

func (api *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	root, err := api.Resolver.Root()
	if err != nil {
		writeJSON(w, domain.VersionInfo{})
		return
	}
	writeJSON(w, version.Info(root))
}

func (api *Server) handleLauncherVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"version": version.LauncherVersion})
}

func (api *Server) handleLauncherUpdate(w http.ResponseWriter, r *http.Request) {
	info, err := updater.CheckForUpdates()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, info)
}

func (api *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := api.Resolver.Reset(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.Mode == "" {
		req.Mode = runner.ModeFull
	}
	if req.Mode != runner.ModeFull && req.Mode != runner.ModeQuick {
		http.Error(w, "unknown mode: "+req.Mode, http.StatusBadRequest)
		return
	}

	if err := api.Supervisor.Start(req.Mode); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (api *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	if err := api.Supervisor.Stop(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (api *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	if err := api.Supervisor.Restart(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// handleExit kills the server and terminates the daemon. The response goes
// out before the shutdown fires so the client is not left hanging.
func (api *Server) handleExit(w http.ResponseWriter, r *http.Request) {
	api.Supervisor.Kill()
	w.WriteHeader(http.StatusOK)

	go func() {
		time.Sleep(100 * time.Millisecond)
		api.shutdown()
	}()
}

func (api *Server) handleLocalIP(w http.ResponseWriter, r *http.Request) {
	ip, err := LocalIP()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"ip": ip})
}

func (api *Server) handleOpenURL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
		http.Error(w, "invalid URL scheme", http.StatusBadRequest)
		return
	}

	if err := browser.OpenURL(req.URL); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (api *Server) handleUpdateHistory(w http.ResponseWriter, r *http.Request) {
	records, err := api.Store.ListUpdates()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []domain.UpdateRecord{}
	}
	writeJSON(w, records)
}
