package domain

// Event types delivered over the websocket event stream. The frontend keys
// off these strings, so they are part of the wire contract.
const (
	EventUpdateProgress = "download-progress"
	EventDownloadBytes  = "download-bytes"
	EventServerLog      = "server-log"
	EventServerLogErr   = "server-log-err"
	EventServerStarted  = "server-started"
	EventServerStopped  = "server-stopped"
)

type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// ProgressEvent carries byte-level download progress alongside the free-text
// update milestones.
type ProgressEvent struct {
	Message      string  `json:"message"`
	Progress     float64 `json:"progress"`
	CurrentBytes int64   `json:"current_bytes"`
	TotalBytes   int64   `json:"total_bytes"`
}

// Notifier is the surface through which the launcher core reports milestones
// and server lifecycle signals to whoever is listening (the websocket hub in
// the daemon, a test double in tests).
type Notifier interface {
	Emit(eventType string, data any)
}

// NopNotifier discards every event.
type NopNotifier struct{}

func (NopNotifier) Emit(string, any) {}
