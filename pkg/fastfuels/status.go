package fastfuels

// Status represents the processing status of an asynchronous resource.
type Status string

// Resource statuses reported by the API.
const (
	// StatusPending indicates the resource has been accepted but not queued.
	StatusPending Status = "pending"

	// StatusQueued indicates the resource is waiting for a worker.
	StatusQueued Status = "queued"

	// StatusRunning indicates the resource is being processed.
	StatusRunning Status = "running"

	// StatusCompleted indicates processing finished successfully.
	StatusCompleted Status = "completed"

	// StatusFailed indicates processing finished unsuccessfully.
	StatusFailed Status = "failed"

	// StatusExpired indicates an export's signed URL is no longer valid.
	// Only exports report this status.
	StatusExpired Status = "expired"
)

// Terminal reports whether the status is a terminal state. A resource in a
// terminal state will not change status without further requests.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusExpired
}

// Succeeded reports whether the status is the successful terminal state.
func (s Status) Succeeded() bool {
	return s == StatusCompleted
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}
