package update

import (
	"io"

	"palauncher/internal/domain"
)

// ProgressReader reports byte counts as it is read from. When the total is
// unknown (chunked responses have no Content-Length) no events are emitted.
type ProgressReader struct {
	Reader   io.Reader
	Total    int64
	Current  int64
	Notifier domain.Notifier
	Message  string

	lastPercent int
}

func (pr *ProgressReader) Read(p []byte) (int, error) {
	n, err := pr.Reader.Read(p)
	pr.Current += int64(n)

	if pr.Notifier != nil && pr.Total > 0 {
		percentage := float64(pr.Current) / float64(pr.Total) * 100
		if int(percentage) > pr.lastPercent {
			pr.lastPercent = int(percentage)
			pr.Notifier.Emit(domain.EventDownloadBytes, domain.ProgressEvent{
				Message:      pr.Message,
				Progress:     percentage,
				CurrentBytes: pr.Current,
				TotalBytes:   pr.Total,
			})
		}
	}

	return n, err
}
