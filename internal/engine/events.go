package engine

import "electric-fields/internal/render"

// SnapshotKind tells which point of the refinement a snapshot marks.
type SnapshotKind int

const (
	// SnapshotSeed follows the single seed block.
	SnapshotSeed SnapshotKind = iota
	// SnapshotRow follows a completed row of cells.
	SnapshotRow
	// SnapshotLevel follows a completed resolution level. Only emitted when
	// frames are saved.
	SnapshotLevel
	// SnapshotFinal follows the last level.
	SnapshotFinal
)

func (k SnapshotKind) String() string {
	switch k {
	case SnapshotSeed:
		return "seed"
	case SnapshotRow:
		return "row"
	case SnapshotLevel:
		return "level"
	case SnapshotFinal:
		return "final"
	}
	return "unknown"
}

// Snapshot reports progress of a render.
type Snapshot struct {
	Kind SnapshotKind
	// Resolution is the block edge of the pass that produced the snapshot.
	Resolution int
	// Row is the top of the completed cell row for SnapshotRow.
	Row int
	// Raster is the live target. Read it through its locking accessors.
	Raster *render.Raster
	// Frame is a private copy of the picture, set for SnapshotLevel.
	Frame *render.Raster
}

// Listener receives the events of a session. Methods are called from the
// render goroutine, in order, and must not block for long. Each run ends
// with exactly one of RenderFinished, RenderCancelled or RenderFailed.
type Listener interface {
	RenderStarted(s *Session)
	RenderSnapshot(s *Session, snap Snapshot)
	RenderFinished(s *Session)
	RenderCancelled(s *Session)
	RenderFailed(s *Session, err error)
}

// Funcs adapts optional callbacks to a Listener. Nil fields are skipped.
type Funcs struct {
	Started   func(s *Session)
	Snapshot  func(s *Session, snap Snapshot)
	Finished  func(s *Session)
	Cancelled func(s *Session)
	Failed    func(s *Session, err error)
}

func (f Funcs) RenderStarted(s *Session) {
	if f.Started != nil {
		f.Started(s)
	}
}

func (f Funcs) RenderSnapshot(s *Session, snap Snapshot) {
	if f.Snapshot != nil {
		f.Snapshot(s, snap)
	}
}

func (f Funcs) RenderFinished(s *Session) {
	if f.Finished != nil {
		f.Finished(s)
	}
}

func (f Funcs) RenderCancelled(s *Session) {
	if f.Cancelled != nil {
		f.Cancelled(s)
	}
}

func (f Funcs) RenderFailed(s *Session, err error) {
	if f.Failed != nil {
		f.Failed(s, err)
	}
}

// EventKind enumerates the events carried by an EventQueue.
type EventKind int

const (
	EventStarted EventKind = iota
	EventSnapshot
	EventFinished
	EventCancelled
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventSnapshot:
		return "snapshot"
	case EventFinished:
		return "finished"
	case EventCancelled:
		return "cancelled"
	case EventFailed:
		return "failed"
	}
	return "unknown"
}

// Event is a Listener call captured as a value.
type Event struct {
	Kind     EventKind
	Session  *Session
	Snapshot Snapshot
	Err      error
}

// Terminal reports whether the event ends a run.
func (e Event) Terminal() bool {
	return e.Kind == EventFinished || e.Kind == EventCancelled || e.Kind == EventFailed
}

// EventQueue is a Listener that forwards events onto a channel. Lifecycle
// events block until there is room; snapshots are dropped when the buffer is
// full, so a slow consumer only sees fewer intermediate pictures.
type EventQueue struct {
	C chan Event
}

// NewEventQueue returns a queue with the given buffer size.
func NewEventQueue(size int) *EventQueue {
	if size < 1 {
		size = 1
	}
	return &EventQueue{C: make(chan Event, size)}
}

func (q *EventQueue) RenderStarted(s *Session) {
	q.C <- Event{Kind: EventStarted, Session: s}
}

func (q *EventQueue) RenderSnapshot(s *Session, snap Snapshot) {
	select {
	case q.C <- Event{Kind: EventSnapshot, Session: s, Snapshot: snap}:
	default:
	}
}

func (q *EventQueue) RenderFinished(s *Session) {
	q.C <- Event{Kind: EventFinished, Session: s}
}

func (q *EventQueue) RenderCancelled(s *Session) {
	q.C <- Event{Kind: EventCancelled, Session: s}
}

func (q *EventQueue) RenderFailed(s *Session, err error) {
	q.C <- Event{Kind: EventFailed, Session: s, Err: err}
}
