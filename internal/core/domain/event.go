package domain

// ChangeKind classifies a change reported by the native watcher.
type ChangeKind uint8

const (
	// ChangeCreated indicates a file or directory appeared.
	ChangeCreated ChangeKind = iota
	// ChangeModified indicates a file's content or metadata changed.
	ChangeModified
	// ChangeRemoved indicates a file or directory disappeared or was renamed away.
	ChangeRemoved
	// ChangeInvalidated indicates the native layer lost track of changes below Path,
	// for example after an event queue overflow.
	ChangeInvalidated
)

// String returns a short name of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeCreated:
		return "created"
	case ChangeModified:
		return "modified"
	case ChangeRemoved:
		return "removed"
	default:
		return "invalidated"
	}
}

// ChangeEvent is a single change delivered by the native watcher.
type ChangeEvent struct {
	// Path is the absolute path that changed.
	Path string
	// Kind is the type of change.
	Kind ChangeKind
}

// WatchStatistics are the counters accumulated by a native watcher since the last reset.
type WatchStatistics struct {
	// EventCount is the number of native events received.
	EventCount int
	// Overflowed is set when the native event queue overflowed and events were lost.
	Overflowed bool
}
