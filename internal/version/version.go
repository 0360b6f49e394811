// Package version reports the identity of the installed app and of the
// launcher itself.
package version

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"palauncher/internal/domain"
)

// LauncherVersion is the launcher's own release version.
const LauncherVersion = "1.3.0"

// candidateFiles may contain "commit [date]" or just a commit hash, checked
// in priority order under the installation root.
var candidateFiles = []string{
	"version.txt",
	"COMMIT",
	".commit",
	"server/version.txt",
}

// Info resolves the installed app's commit identity. File candidates win over
// the git fallback; when nothing yields content both fields stay nil.
func Info(root string) domain.VersionInfo {
	for _, candidate := range candidateFiles {
		content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(candidate)))
		if err != nil {
			continue
		}
		if info, ok := Parse(string(content)); ok {
			return info
		}
	}

	out, err := gitLog(root)
	if err == nil {
		if info, ok := Parse(out); ok {
			return info
		}
	}

	return domain.VersionInfo{}
}

// Parse splits "commit [date]" content: the first whitespace-delimited token
// is the commit, the trimmed remainder (if any) is the date.
func Parse(content string) (domain.VersionInfo, bool) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.VersionInfo{}, false
	}

	commit, rest, found := strings.Cut(content, " ")
	commit = strings.TrimSpace(commit)
	if commit == "" {
		return domain.VersionInfo{}, false
	}

	info := domain.VersionInfo{Commit: &commit}
	if found {
		date := strings.TrimSpace(rest)
		if date != "" {
			info.Date = &date
		}
	}
	return info, true
}

func gitLog(root string) (string, error) {
	cmd := exec.Command("git", "log", "-1", "--format=%h %ad", "--date=short")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
