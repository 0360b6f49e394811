package sdk

import "time"

type Status struct {
	Ready  bool   `json:"ready"`
	Path   string `json:"path"`
	ZipURL string `json:"zip_url"`
}

type VersionInfo struct {
	Commit *string `json:"commit"`
	Date   *string `json:"date"`
}

type UpdateRecord struct {
	ID        string    `json:"id"`
	ZipURL    string    `json:"zip_url"`
	Commit    string    `json:"commit"`
	Date      string    `json:"date"`
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateInfo struct {
	CurrentVersion  string `json:"current_version"`
	LatestVersion   string `json:"latest_version"`
	UpdateAvailable bool   `json:"update_available"`
	ReleaseURL      string `json:"release_url"`
}

// Event mirrors the daemon's websocket frames.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}
