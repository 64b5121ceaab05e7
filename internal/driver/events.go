package driver

import "time"

// FileStatus reports where a file is in the pipeline.
type FileStatus int

const (
	// FileQueued indicates that a file was collected and waits for a worker.
	FileQueued FileStatus = iota
	FileStarted
	FileDone
)

func (s FileStatus) String() string {
	switch s {
	case FileQueued:
		return "queued"
	case FileStarted:
		return "started"
	case FileDone:
		return "done"
	default:
		return "unknown"
	}
}

// Event describes the progress of one file. Changed, Cached and Err are only
// meaningful for FileDone.
type Event struct {
	Path    string
	Status  FileStatus
	Index   int
	Total   int
	Changed bool
	Cached  bool
	Err     error
	Elapsed time.Duration
}

// Sink receives events emitted during FormatPaths. It is called from worker
// goroutines and must be safe for concurrent use.
type Sink func(Event)

// Emit calls s when it is set.
func (s Sink) Emit(ev Event) {
	if s != nil {
		s(ev)
	}
}
