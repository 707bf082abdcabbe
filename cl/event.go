package cl

import (
	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/attr"
	"github.com/wippyai/cl-runtime/errors"
)

// Event owns one reference to a native event.
type Event struct {
	owned
}

// EventInfo is the typed view of an event snapshot.
type EventInfo struct {
	CommandQueue   clruntime.Handle
	Context        clruntime.Handle
	CommandType    uint32
	ReferenceCount uint32
	Status         clruntime.ExecStatus
}

// Info returns the decoded event attributes as of the last snapshot.
func (e *Event) Info() EventInfo {
	s := e.attrs
	return EventInfo{
		CommandQueue:   s.Handle(attr.EventCommandQueue),
		Context:        s.Handle(attr.EventContext),
		CommandType:    s.Uint32(attr.EventCommandType),
		ReferenceCount: s.Uint32(attr.EventReferenceCount),
		Status:         clruntime.ExecStatus(s.Int32(attr.EventCommandExecutionStatus)),
	}
}

// Retain returns a second facade holding its own unit of ownership.
func (e *Event) Retain() (*Event, error) {
	ref, err := e.clone()
	if err != nil {
		return nil, err
	}
	return &Event{owned: owned{object: e.object, ref: ref}}, nil
}

// Refresh re-reads the event attributes. The result shares this facade's
// ownership unit.
func (e *Event) Refresh() (*Event, error) {
	if _, err := e.live(errors.PhaseQuery, "Refresh"); err != nil {
		return nil, err
	}
	return &Event{owned: e.rt.ownedSnapshot(e.ref)}, nil
}

// SetStatus completes a user event, or fails it with a negative status.
func (e *Event) SetStatus(status clruntime.ExecStatus) error {
	h, err := e.live(errors.PhaseMutate, "SetUserEventStatus")
	if err != nil {
		return err
	}
	return mutated(e.target, "SetUserEventStatus", e.rt.drv.SetUserEventStatus(h, int32(status)))
}
