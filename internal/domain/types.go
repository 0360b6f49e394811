package domain

import "time"

// Status reports whether a usable installation exists. When Ready is false,
// Path holds a human-readable diagnostic instead of a directory.
type Status struct {
	Ready  bool   `json:"ready"`
	Path   string `json:"path"`
	ZipURL string `json:"zip_url"`
}

// VersionInfo identifies the installed app. Nil fields mean "unknown", which
// callers must be able to tell apart from an empty string.
type VersionInfo struct {
	Commit *string `json:"commit"`
	Date   *string `json:"date"`
}

// UpdateRecord is one completed (or failed) run of the update pipeline.
type UpdateRecord struct {
	ID        string    `json:"id"`
	ZipURL    string    `json:"zip_url"`
	Commit    string    `json:"commit"`
	Date      string    `json:"date"`
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateRepository interface {
	SaveUpdate(rec *UpdateRecord) error
	ListUpdates() ([]UpdateRecord, error)
}
