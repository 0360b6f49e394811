package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"palauncher/internal/app"
	"palauncher/internal/domain"
	"palauncher/internal/install"
	"palauncher/internal/runner"
	"palauncher/internal/storage"
	"palauncher/internal/update"
	"palauncher/internal/version"
	"palauncher/internal/ws"
)

func newTestServer(t *testing.T, dataDir string) *Server {
	t.Helper()

	store, err := storage.NewGormStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	hub := ws.NewHub(16)
	go hub.Run()
	t.Cleanup(hub.Stop)

	resolver := install.NewResolver(dataDir, false)
	updater := update.NewOrchestrator(dataDir, resolver, hub, store)
	supervisor := runner.NewSupervisor(resolver, updater, hub)

	container := &app.Container{
		DataDir:    dataDir,
		Resolver:   resolver,
		Updater:    updater,
		Supervisor: supervisor,
		Hub:        hub,
		Store:      store,
	}

	return NewAPIServer(container, func() {})
}

func TestStatusNotInstalled(t *testing.T) {
	srv := newTestServer(t, t.TempDir())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var status domain.Status
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Ready {
		t.Error("expected not ready")
	}
	if !strings.Contains(status.Path, "not downloaded") {
		t.Errorf("expected diagnostic in path, got %q", status.Path)
	}
	if status.ZipURL == "" {
		t.Error("expected a zip URL")
	}
}

func TestStatusInstalled(t *testing.T) {
	dataDir := t.TempDir()
	appDir := filepath.Join(dataDir, "app")
	if err := os.MkdirAll(filepath.Join(appDir, "scripts"), 0755); err != nil {
		t.Fatal(err)
	}

	srv := newTestServer(t, dataDir)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	var status domain.Status
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if !status.Ready {
		t.Error("expected ready")
	}
	if status.Path != appDir {
		t.Errorf("expected path %s, got %s", appDir, status.Path)
	}
}

func TestLauncherVersion(t *testing.T) {
	srv := newTestServer(t, t.TempDir())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/launcher-version", nil))

	var resp struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Version != version.LauncherVersion {
		t.Errorf("expected %s, got %s", version.LauncherVersion, resp.Version)
	}
}

func TestVersionNotInstalled(t *testing.T) {
	srv := newTestServer(t, t.TempDir())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	var info domain.VersionInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.Commit != nil || info.Date != nil {
		t.Errorf("expected unknown version, got %+v", info)
	}
}

func TestOpenURLRejectsBadScheme(t *testing.T) {
	srv := newTestServer(t, t.TempDir())

	body := strings.NewReader(`{"url": "file:///etc/passwd"}`)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/open-url", body))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-http scheme, got %d", rec.Code)
	}
}

func TestStartRejectsUnknownMode(t *testing.T) {
	srv := newTestServer(t, t.TempDir())

	body := strings.NewReader(`{"mode": "turbo"}`)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/server/start", body))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown mode, got %d", rec.Code)
	}
}

func TestUpdateHistoryEmpty(t *testing.T) {
	srv := newTestServer(t, t.TempDir())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/updates/history", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var records []domain.UpdateRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty history, got %d records", len(records))
	}
}

func TestReset(t *testing.T) {
	dataDir := t.TempDir()
	appDir := filepath.Join(dataDir, "app")
	if err := os.MkdirAll(filepath.Join(appDir, "scripts"), 0755); err != nil {
		t.Fatal(err)
	}

	srv := newTestServer(t, dataDir)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reset", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if _, err := os.Stat(appDir); !os.IsNotExist(err) {
		t.Error("expected app dir to be removed")
	}
}
