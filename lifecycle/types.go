package lifecycle

import (
	clruntime "github.com/wippyai/cl-runtime"
)

// EventType classifies ownership changes.
type EventType uint8

const (
	EventAcquired      EventType = iota // a unit was taken over from a creation call
	EventRetained                       // a unit was added by Retain
	EventReleased                       // a unit was given back by Dispose
	EventLeaked                         // a unit was given back by the cleanup safety net
	EventReleaseFailed                  // the native release reported an error
)

var eventNames = [...]string{
	EventAcquired:      "acquired",
	EventRetained:      "retained",
	EventReleased:      "released",
	EventLeaked:        "leaked",
	EventReleaseFailed: "release-failed",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event describes one ownership change.
type Event struct {
	Err    error
	Handle clruntime.Handle
	Kind   clruntime.ObjectKind
	Type   EventType
}

// Observer receives ownership events. Events caused by the cleanup safety
// net are delivered from the runtime's cleanup goroutine.
type Observer interface {
	OnLifecycleEvent(Event)
}

// Releaser is the subset of clruntime.Driver that manages reference counts.
type Releaser interface {
	Retain(kind clruntime.ObjectKind, h clruntime.Handle) clruntime.Status
	Release(kind clruntime.ObjectKind, h clruntime.Handle) clruntime.Status
}
