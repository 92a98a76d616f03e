package model

// TaskStatus represents the status of a background audio task: a remote
// fetch into the cache or an ffmpeg conversion
type TaskStatus string

const (
	// TaskStatusPending means the task is queued but not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusDownloading means bytes are being written to the cache
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusConverting means ffmpeg is rewriting the file into a decodable format
	TaskStatusConverting TaskStatus = "Converting"

	// TaskStatusCompleted means the output file is ready to decode
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the task failed with an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusPending || ts == TaskStatusDownloading || ts == TaskStatusConverting
}

// IsFinished returns true if the task is in a finished state (completed or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusError
}

// PlayerState is the track lifecycle of a single player screen.
type PlayerState string

const (
	PlayerStateNoTrack PlayerState = "NoTrack"
	PlayerStateLoading PlayerState = "Loading"
	PlayerStateReady   PlayerState = "Ready"
	PlayerStateError   PlayerState = "Error"
)

// String returns the string representation of PlayerState
func (ps PlayerState) String() string {
	return string(ps)
}

// AcceptsToggle reports whether a play/pause request may be served in this state.
// Requests made while a load is in flight are ignored.
func (ps PlayerState) AcceptsToggle() bool {
	return ps != PlayerStateLoading
}

// HasHandle reports whether a loaded sound exists in this state.
func (ps PlayerState) HasHandle() bool {
	return ps == PlayerStateReady
}
