// Package update downloads the packaged app and replaces the installed copy,
// carrying user data across the swap.
package update

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"palauncher/internal/config"
	"palauncher/internal/domain"
	"palauncher/internal/preserve"
	"palauncher/internal/version"
)

const archiveFileName = "planarally.zip"

// executableScripts lose their permission bits through zip extraction and are
// re-marked after every install.
var executableScripts = []string{
	"scripts/run.sh",
	"scripts/start-server.sh",
}

// Resolver locates the installation root. Satisfied by *install.Resolver.
type Resolver interface {
	Root() (string, error)
	DevRoot() (string, bool)
}

type Orchestrator struct {
	DataDir  string
	Resolver Resolver
	Notifier domain.Notifier
	Store    domain.UpdateRepository
	Client   *http.Client

	mu sync.Mutex
}

func NewOrchestrator(dataDir string, resolver Resolver, notifier domain.Notifier, store domain.UpdateRepository) *Orchestrator {
	return &Orchestrator{
		DataDir:  dataDir,
		Resolver: resolver,
		Notifier: notifier,
		Store:    store,
		Client:   &http.Client{},
	}
}

// EnsureInstalled returns the installation root, downloading and installing
// the app first when it is missing or force is set. Every step aborts the
// pipeline on failure except the explicitly best-effort ones (temp cleanup,
// permission fix-up). The existing installation's user data survives the swap
// through a backup session taken before the destructive step.
func (o *Orchestrator) EnsureInstalled(force bool) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	// A development checkout is never replaced by a download, forced or not.
	if root, ok := o.Resolver.DevRoot(); ok {
		return root, nil
	}

	if !force {
		if root, err := o.Resolver.Root(); err == nil {
			return root, nil
		}
	}

	appDir := filepath.Join(o.DataDir, "app")
	zipPath := filepath.Join(o.DataDir, archiveFileName)
	zipURL := config.ZipURL(o.DataDir)

	// Backup before anything destructive. A prior installation whose root
	// cannot be resolved has no recognizable user data to save.
	var sessionDir string
	if _, err := os.Stat(appDir); err == nil {
		if root, err := o.Resolver.Root(); err == nil {
			o.milestone("Creating user data backup...")
			sessionDir, err = preserve.Backup(o.DataDir, root)
			if err != nil {
				return "", o.fail(zipURL, err)
			}
		}
	}

	o.milestone("Downloading app...")
	data, err := o.download(zipURL)
	if err != nil {
		return "", o.fail(zipURL, err)
	}

	o.milestone("Writing file...")
	if err := os.MkdirAll(o.DataDir, 0755); err != nil {
		return "", o.fail(zipURL, err)
	}
	if err := os.WriteFile(zipPath, data, 0644); err != nil {
		return "", o.fail(zipURL, err)
	}

	o.milestone("Extracting archive...")
	if err := os.RemoveAll(appDir); err != nil {
		return "", o.fail(zipURL, err)
	}
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", o.fail(zipURL, err)
	}
	if err := extractZip(data, appDir); err != nil {
		return "", o.fail(zipURL, fmt.Errorf("extraction failed: %w", err))
	}

	_ = os.Remove(zipPath)

	root, err := o.Resolver.Root()
	if err != nil {
		return "", o.fail(zipURL, err)
	}

	if runtime.GOOS != "windows" {
		for _, script := range executableScripts {
			p := filepath.Join(root, filepath.FromSlash(script))
			if _, err := os.Stat(p); err == nil {
				_ = os.Chmod(p, 0755)
			}
		}
	}

	if sessionDir != "" {
		o.milestone("Restoring user data backup...")
		if err := preserve.Restore(sessionDir, root); err != nil {
			return "", o.fail(zipURL, err)
		}
		dbPath := filepath.Join(root, "server", "data", "planar.sqlite")
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			o.milestone("Warning: planar.sqlite not found after restore")
		}
	}

	o.milestone("Completed")
	o.record(zipURL, root, "completed")

	return root, nil
}

func (o *Orchestrator) download(zipURL string) ([]byte, error) {
	resp, err := o.Client.Get(zipURL)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("server responded with %s", resp.Status)
	}

	reader := &ProgressReader{
		Reader:   resp.Body,
		Total:    resp.ContentLength,
		Notifier: o.Notifier,
		Message:  "Downloading app...",
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return buf.Bytes(), nil
}

func (o *Orchestrator) milestone(msg string) {
	if o.Notifier != nil {
		o.Notifier.Emit(domain.EventUpdateProgress, msg)
	}
}

// record stores the update outcome. History is a diagnostic aid; losing a row
// never fails the update.
func (o *Orchestrator) record(zipURL, root, result string) {
	if o.Store == nil {
		return
	}
	rec := &domain.UpdateRecord{
		ID:        uuid.New().String(),
		ZipURL:    zipURL,
		Result:    result,
		CreatedAt: time.Now(),
	}
	if root != "" {
		info := version.Info(root)
		if info.Commit != nil {
			rec.Commit = *info.Commit
		}
		if info.Date != nil {
			rec.Date = *info.Date
		}
	}
	if err := o.Store.SaveUpdate(rec); err != nil {
		o.milestone(fmt.Sprintf("Warning: could not record update: %v", err))
	}
}

func (o *Orchestrator) fail(zipURL string, err error) error {
	o.record(zipURL, "", fmt.Sprintf("failed: %v", err))
	return err
}
