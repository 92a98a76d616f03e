package model

import (
	"fmt"
	"time"
)

// FetchTask tracks one remote narration file being copied into the cache
type FetchTask struct {
	ID         string
	URL        string
	Status     TaskStatus
	Progress   float64 // 0.0 to 1.0, 0 while the size is unknown
	BytesDone  int64
	BytesTotal int64  // -1 if the server sent no length
	Attempts   int    // number of attempts made so far
	LastError  string // last error message if any
	OutputPath string // cached file path once completed
	StartedAt  time.Time
	FinishedAt time.Time
}

// SizeString returns a human readable transfer size such as "1.2MB / 3.4MB"
func (t *FetchTask) SizeString() string {
	if t.BytesTotal <= 0 {
		return formatBytes(t.BytesDone)
	}
	return fmt.Sprintf("%s / %s", formatBytes(t.BytesDone), formatBytes(t.BytesTotal))
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1fMB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fKB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%dB", n)
	}
}

// TranscodeTask tracks one local file being converted to WAV
type TranscodeTask struct {
	ID         string
	InputPath  string
	OutputPath string
	Status     TaskStatus
	Progress   float64 // 0.0 to 1.0, 0 while the input duration is unknown
	Percent    int
	LastError  string
	StartedAt  time.Time
	FinishedAt time.Time
}
