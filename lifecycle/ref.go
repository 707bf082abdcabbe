package lifecycle

import (
	"runtime"
	"sync"

	"go.uber.org/zap"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/errors"
)

// Ref holds exactly one unit of ownership of a native handle.
//
// Dispose gives the unit back and is idempotent: the native release runs at
// most once no matter how often, or from how many goroutines, Dispose is
// called. A Ref that becomes unreachable without Dispose is released by a
// runtime cleanup; that path logs a warning and reports EventLeaked.
type Ref struct {
	st      *state
	cleanup runtime.Cleanup
	tracked bool
}

// state is the part of a Ref the cleanup may touch. It must never point back
// at the Ref, or the Ref would stay reachable forever.
type state struct {
	drv    Releaser
	ledger *Ledger
	mu     sync.Mutex
	handle clruntime.Handle
	kind   clruntime.ObjectKind
}

// Own takes over one unit that a creation call (or Retain) already handed
// to the caller. An invalid handle produces a Ref that is already disposed.
func Own(drv Releaser, kind clruntime.ObjectKind, h clruntime.Handle, ledger *Ledger) *Ref {
	r := &Ref{st: &state{drv: drv, ledger: ledger, kind: kind, handle: h}}
	if !h.IsValid() {
		return r
	}
	r.cleanup = runtime.AddCleanup(r, finalize, r.st)
	r.tracked = true
	ledger.record(Event{Kind: kind, Handle: h, Type: EventAcquired})
	return r
}

// Kind returns the resource kind of the owned handle.
func (r *Ref) Kind() clruntime.ObjectKind {
	return r.st.kind
}

// Handle returns the owned handle, or 0 once disposed.
func (r *Ref) Handle() clruntime.Handle {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return r.st.handle
}

// Disposed reports whether the unit has been given back.
func (r *Ref) Disposed() bool {
	return !r.Handle().IsValid()
}

// Clone retains the handle and returns a Ref for the new unit. The two Refs
// are disposed independently.
func (r *Ref) Clone() (*Ref, error) {
	r.st.mu.Lock()
	h := r.st.handle
	r.st.mu.Unlock()

	if !h.IsValid() {
		return nil, errors.InvalidHandle(errors.PhaseLifecycle, r.st.kind.String())
	}
	if err := Retain(r.st.drv, r.st.kind, h); err != nil {
		return nil, err
	}

	c := &Ref{st: &state{drv: r.st.drv, ledger: r.st.ledger, kind: r.st.kind, handle: h}}
	c.cleanup = runtime.AddCleanup(c, finalize, c.st)
	c.tracked = true
	r.st.ledger.record(Event{Kind: r.st.kind, Handle: h, Type: EventRetained})
	return c, nil
}

// Dispose gives the unit back. Release failures are logged, reported to
// ledger observers and otherwise swallowed.
func (r *Ref) Dispose() {
	if r.tracked {
		r.cleanup.Stop()
	}
	r.st.release(false)
	runtime.KeepAlive(r)
}

func finalize(s *state) {
	s.release(true)
}

func (s *state) release(leaked bool) {
	s.mu.Lock()
	h := s.handle
	s.handle = 0
	s.mu.Unlock()

	if !h.IsValid() {
		return
	}

	typ := EventReleased
	if leaked {
		typ = EventLeaked
		Logger().Warn("handle released by cleanup without Dispose",
			zap.Stringer("kind", s.kind),
			zap.Stringer("handle", h))
	}

	if err := Release(s.drv, s.kind, h); err != nil {
		Logger().Warn("release failed",
			zap.Stringer("kind", s.kind),
			zap.Stringer("handle", h),
			zap.Bool("leaked", leaked),
			zap.Error(err))
		s.ledger.record(Event{Kind: s.kind, Handle: h, Type: EventReleaseFailed, Err: err})
		return
	}

	Logger().Debug("handle released",
		zap.Stringer("kind", s.kind),
		zap.Stringer("handle", h))
	s.ledger.record(Event{Kind: s.kind, Handle: h, Type: typ})
}
