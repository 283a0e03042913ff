package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"mediaprobe/internal/media/metadata"
)

// KindError marks an entry whose probe failed.
const KindError = "error"

// Entry is one catalog row.
type Entry struct {
	Path       string
	Kind       string
	Codec      string
	Container  string
	Size       int64
	DurationMs float64
	Width      int
	Height     int
	Framerate  float64
	Channels   int
	// Payload holds the flattened metadata JSON; empty for failed probes.
	Payload   string
	RequestID string
	Error     string
	ProbedAt  time.Time
}

// Failed reports whether the entry records a probe failure.
func (e Entry) Failed() bool {
	return e.Kind == KindError
}

// EntryFromMetadata builds the catalog row for a successful probe.
func EntryFromMetadata(meta metadata.Metadata, requestID string) (Entry, error) {
	if meta == nil {
		return Entry{}, fmt.Errorf("catalog entry: nil metadata")
	}
	payload, err := json.Marshal(meta)
	if err != nil {
		return Entry{}, fmt.Errorf("encode metadata: %w", err)
	}

	common := meta.CommonFields()
	entry := Entry{
		Path:      common.Path,
		Kind:      string(meta.Kind()),
		Codec:     common.Codec,
		Container: common.Container,
		Size:      common.Size,
		Payload:   string(payload),
		RequestID: requestID,
		ProbedAt:  time.Now().UTC(),
	}
	switch m := meta.(type) {
	case *metadata.ImageMetadata:
		entry.Width, entry.Height = m.Width, m.Height
	case *metadata.AudioMetadata:
		entry.DurationMs = m.DurationMs
		entry.Channels = m.Channels
	case *metadata.VideoMetadata:
		entry.DurationMs = m.DurationMs
		entry.Width, entry.Height = m.Width, m.Height
		entry.Framerate = m.Framerate
		if len(m.AudioStreams) > 0 {
			entry.Channels = m.AudioStreams[0].Channels
		}
	}
	return entry, nil
}

// EntryFromError builds the catalog row for a failed probe.
func EntryFromError(path string, probeErr error, requestID string) Entry {
	msg := "unknown error"
	if probeErr != nil {
		msg = probeErr.Error()
	}
	return Entry{
		Path:      path,
		Kind:      KindError,
		RequestID: requestID,
		Error:     msg,
		ProbedAt:  time.Now().UTC(),
	}
}
