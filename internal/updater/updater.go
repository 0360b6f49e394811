// Package updater checks GitHub for newer launcher releases. This is about
// the launcher binary itself, not the managed app; app updates live in
// internal/update.
package updater

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"palauncher/internal/version"
)

const (
	CurrentVersion = "v" + version.LauncherVersion
	RepoOwner      = "mccoy88f"
	RepoName       = "PlanarAllyPlus"
)

// DefaultClient is the HTTP client used for release lookups; tests swap it
// for one pointed at a fixture server.
var DefaultClient = &http.Client{}

// ReleasesURL is the GitHub API endpoint queried for the latest release.
// Variable so tests can redirect it.
var ReleasesURL = fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", RepoOwner, RepoName)

type release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

type UpdateInfo struct {
	CurrentVersion  string `json:"current_version"`
	LatestVersion   string `json:"latest_version"`
	UpdateAvailable bool   `json:"update_available"`
	ReleaseURL      string `json:"release_url"`
}

// CheckForUpdates asks GitHub for the latest published release and compares
// its tag against the running version. A repo with no releases reports the
// current version as latest.
func CheckForUpdates() (*UpdateInfo, error) {
	req, err := http.NewRequest(http.MethodGet, ReleasesURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "palauncher-updater")
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// 404 means the repo has never published a release.
	if resp.StatusCode == http.StatusNotFound {
		return &UpdateInfo{
			CurrentVersion: CurrentVersion,
			LatestVersion:  CurrentVersion,
		}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch latest release: %s", resp.Status)
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, err
	}
	if rel.TagName == "" {
		return nil, fmt.Errorf("release response missing tag name")
	}

	return &UpdateInfo{
		CurrentVersion:  CurrentVersion,
		LatestVersion:   rel.TagName,
		UpdateAvailable: compareVersions(rel.TagName, CurrentVersion) > 0,
		ReleaseURL:      rel.HTMLURL,
	}, nil
}

// compareVersions orders two "vX.Y.Z" strings numerically per component.
// Non-numeric components compare as zero.
func compareVersions(a, b string) int {
	pa := strings.Split(strings.TrimPrefix(a, "v"), ".")
	pb := strings.Split(strings.TrimPrefix(b, "v"), ".")

	n := len(pa)
	if len(pb) > n {
		n = len(pb)
	}
	for i := 0; i < n; i++ {
		var na, nb int
		if i < len(pa) {
			na, _ = strconv.Atoi(pa[i])
		}
		if i < len(pb) {
			nb, _ = strconv.Atoi(pb[i])
		}
		if na != nb {
			if na > nb {
				return 1
			}
			return -1
		}
	}
	return 0
}
