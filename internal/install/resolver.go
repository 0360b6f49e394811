// Package install locates the installed app directory. Every other component
// resolves the installation root through here; the root is recomputed on each
// call, never cached.
package install

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrNotInstalled distinguishes "never downloaded" from a broken tree so the
// UI can suggest the right action.
type NotInstalledError struct {
	Reason string
}

func (e *NotInstalledError) Error() string {
	return e.Reason
}

type Resolver struct {
	// DataDir is the launcher's application-data directory; the installed
	// app lives in DataDir/app.
	DataDir string

	// Dev enables the development shortcut: running the daemon from a source
	// checkout uses the co-located tree instead of a downloaded copy.
	Dev bool
}

func NewResolver(dataDir string, dev bool) *Resolver {
	return &Resolver{DataDir: dataDir, Dev: dev}
}

// Root resolves the installation root. GitHub archives unpack into a single
// nested `name-branch/` directory, so when `app` holds exactly one directory
// that itself has the expected structure, that directory is the root.
func (r *Resolver) Root() (string, error) {
	if root, ok := r.DevRoot(); ok {
		return root, nil
	}

	appDir := filepath.Join(r.DataDir, "app")
	if _, err := os.Stat(appDir); os.IsNotExist(err) {
		return "", &NotInstalledError{Reason: "App not downloaded. Run install or update."}
	}

	entries, err := os.ReadDir(appDir)
	if err != nil {
		return "", fmt.Errorf("could not read app directory: %w", err)
	}

	if len(entries) == 1 && entries[0].IsDir() {
		sub := filepath.Join(appDir, entries[0].Name())
		if hasScripts(sub) {
			return sub, nil
		}
	}

	if hasScripts(appDir) {
		return appDir, nil
	}

	return "", &NotInstalledError{Reason: "Invalid app structure. Run update."}
}

// DevRoot reports the development checkout root when the dev shortcut
// applies. A checkout is never replaced by a download, so callers that would
// overwrite the installation must check this first.
func (r *Resolver) DevRoot() (string, bool) {
	if !r.Dev {
		return "", false
	}
	return devRoot()
}

// Reset deletes the installed app directory entirely. User data under the
// preserve paths goes with it; callers are expected to have warned the user.
func (r *Resolver) Reset() error {
	appDir := filepath.Join(r.DataDir, "app")
	if _, err := os.Stat(appDir); os.IsNotExist(err) {
		return nil
	}
	if err := os.RemoveAll(appDir); err != nil {
		return fmt.Errorf("failed to remove app dir: %w", err)
	}
	return nil
}

func hasScripts(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "scripts"))
	return err == nil && info.IsDir()
}

// devRoot finds a source checkout next to the running binary. A binary inside
// a build output directory walks up past it; anything else tries the parent.
func devRoot() (string, bool) {
	exe, err := os.Executable()
	if err != nil {
		return "", false
	}
	dir := filepath.Dir(exe)

	var candidate string
	if strings.Contains(dir, string(filepath.Separator)+"bin") || strings.Contains(dir, string(filepath.Separator)+"build") {
		candidate = filepath.Dir(filepath.Dir(dir))
	} else {
		candidate = filepath.Dir(dir)
	}

	if candidate == "" {
		return "", false
	}

	script := "run.sh"
	if runtime.GOOS == "windows" {
		script = "run.bat"
	}
	if _, err := os.Stat(filepath.Join(candidate, "scripts", script)); err == nil {
		return candidate, true
	}
	return "", false
}
