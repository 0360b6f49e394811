package update

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"palauncher/internal/domain"
	"palauncher/internal/install"
)

// makeZip builds an archive the way GitHub does: every entry under a single
// top-level directory.
func makeZip(t *testing.T, prefix string, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(prefix + name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func writeZipURLConfig(t *testing.T, dataDir, url string) {
	t.Helper()
	content := `{"zip_url": "` + url + `"}`
	if err := os.WriteFile(filepath.Join(dataDir, "config.json"), []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func newTestOrchestrator(dataDir string) *Orchestrator {
	resolver := install.NewResolver(dataDir, false)
	return NewOrchestrator(dataDir, resolver, domain.NopNotifier{}, nil)
}

// checkoutResolver resolves to a fixed development checkout.
type checkoutResolver struct {
	root string
}

func (r checkoutResolver) Root() (string, error)   { return r.root, nil }
func (r checkoutResolver) DevRoot() (string, bool) { return r.root, true }

func TestEnsureInstalledForceSkipsDevCheckout(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte("never fetched"))
	}))
	defer srv.Close()

	dataDir := t.TempDir()
	writeZipURLConfig(t, dataDir, srv.URL)

	checkout := t.TempDir()
	o := NewOrchestrator(dataDir, checkoutResolver{root: checkout}, domain.NopNotifier{}, nil)

	root, err := o.EnsureInstalled(true)
	if err != nil {
		t.Fatalf("EnsureInstalled(true) returned error: %v", err)
	}
	if root != checkout {
		t.Errorf("expected checkout root %s, got %s", checkout, root)
	}
	if got := requests.Load(); got != 0 {
		t.Errorf("expected no download for a dev checkout, got %d requests", got)
	}
	if _, err := os.Stat(filepath.Join(dataDir, "app")); !os.IsNotExist(err) {
		t.Error("expected no app dir to be created for a dev checkout")
	}
}

func TestEnsureInstalledDownloadsAndUnwraps(t *testing.T) {
	archive := makeZip(t, "PlanarAllyPlus-dev/", map[string]string{
		"scripts/run.sh":          "#!/bin/sh\n",
		"scripts/start-server.sh": "#!/bin/sh\n",
		"server/main.py":          "print('hi')\n",
	})

	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write(archive)
	}))
	defer srv.Close()

	dataDir := t.TempDir()
	writeZipURLConfig(t, dataDir, srv.URL)

	o := newTestOrchestrator(dataDir)
	root, err := o.EnsureInstalled(false)
	if err != nil {
		t.Fatalf("EnsureInstalled() returned error: %v", err)
	}

	if filepath.Base(root) != "PlanarAllyPlus-dev" {
		t.Errorf("expected unwrapped nested root, got %s", root)
	}
	if _, err := os.Stat(filepath.Join(root, "scripts", "run.sh")); err != nil {
		t.Errorf("expected extracted run.sh: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dataDir, "planarally.zip")); !os.IsNotExist(err) {
		t.Error("expected temp archive to be cleaned up")
	}

	if requests.Load() != 1 {
		t.Errorf("expected 1 download, got %d", requests.Load())
	}
}

func TestEnsureInstalledIdempotentFastPath(t *testing.T) {
	archive := makeZip(t, "PlanarAllyPlus-dev/", map[string]string{
		"scripts/run.sh": "#!/bin/sh\n",
	})

	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write(archive)
	}))
	defer srv.Close()

	dataDir := t.TempDir()
	writeZipURLConfig(t, dataDir, srv.URL)

	o := newTestOrchestrator(dataDir)
	first, err := o.EnsureInstalled(false)
	if err != nil {
		t.Fatalf("first EnsureInstalled() returned error: %v", err)
	}
	second, err := o.EnsureInstalled(false)
	if err != nil {
		t.Fatalf("second EnsureInstalled() returned error: %v", err)
	}

	if first != second {
		t.Errorf("expected same root, got %s and %s", first, second)
	}
	if requests.Load() != 1 {
		t.Errorf("expected exactly 1 download, got %d", requests.Load())
	}
}

func TestForceUpdatePreservesUserData(t *testing.T) {
	archive := makeZip(t, "PlanarAllyPlus-dev/", map[string]string{
		"scripts/run.sh": "#!/bin/sh\n",
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	}))
	defer srv.Close()

	dataDir := t.TempDir()
	writeZipURLConfig(t, dataDir, srv.URL)

	o := newTestOrchestrator(dataDir)
	root, err := o.EnsureInstalled(false)
	if err != nil {
		t.Fatalf("install: %v", err)
	}

	dbPath := filepath.Join(root, "server", "data", "planar.sqlite")
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dbPath, []byte("campaign"), 0644); err != nil {
		t.Fatal(err)
	}

	newRoot, err := o.EnsureInstalled(true)
	if err != nil {
		t.Fatalf("forced update: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(newRoot, "server", "data", "planar.sqlite"))
	if err != nil {
		t.Fatalf("expected user data to survive the update: %v", err)
	}
	if string(data) != "campaign" {
		t.Errorf("expected campaign, got %q", data)
	}

	if _, err := os.Stat(filepath.Join(dataDir, "pa_update_backup")); !os.IsNotExist(err) {
		t.Error("expected backup session to be consumed")
	}
}

func TestEnsureInstalledServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	dataDir := t.TempDir()
	writeZipURLConfig(t, dataDir, srv.URL)

	o := newTestOrchestrator(dataDir)
	_, err := o.EnsureInstalled(false)
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("expected status in error, got %v", err)
	}
}

func TestEnsureInstalledInvalidArchive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not a zip"))
	}))
	defer srv.Close()

	dataDir := t.TempDir()
	writeZipURLConfig(t, dataDir, srv.URL)

	o := newTestOrchestrator(dataDir)
	if _, err := o.EnsureInstalled(false); err == nil {
		t.Fatal("expected error for invalid archive")
	}
}

func TestExtractZipRejectsTraversal(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("../escape.txt")
	if err != nil {
		t.Fatal(err)
	}
	f.Write([]byte("evil"))
	w.Close()

	if err := extractZip(buf.Bytes(), t.TempDir()); err == nil {
		t.Fatal("expected zip-slip entry to be rejected")
	}
}

