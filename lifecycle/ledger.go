package lifecycle

import (
	"sync"

	clruntime "github.com/wippyai/cl-runtime"
)

type key struct {
	handle clruntime.Handle
	kind   clruntime.ObjectKind
}

// Ledger counts the ownership units held by Refs and fans out ownership
// events to observers. A nil *Ledger records nothing.
type Ledger struct {
	units     map[key]int
	observers []Observer
	mu        sync.RWMutex
	obsMu     sync.RWMutex
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{units: make(map[key]int)}
}

// Outstanding returns the units currently held for h.
func (l *Ledger) Outstanding(kind clruntime.ObjectKind, h clruntime.Handle) int {
	if l == nil {
		return 0
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.units[key{h, kind}]
}

// Len returns the number of distinct handles with outstanding units.
func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.units)
}

// Each iterates over handles with outstanding units.
// Iteration stops early if fn returns false.
func (l *Ledger) Each(fn func(kind clruntime.ObjectKind, h clruntime.Handle, units int) bool) {
	if l == nil {
		return
	}
	l.mu.RLock()
	snapshot := make(map[key]int, len(l.units))
	for k, n := range l.units {
		snapshot[k] = n
	}
	l.mu.RUnlock()

	for k, n := range snapshot {
		if !fn(k.kind, k.handle, n) {
			return
		}
	}
}

// Subscribe adds an observer for ownership events.
func (l *Ledger) Subscribe(o Observer) {
	if l == nil {
		return
	}
	l.obsMu.Lock()
	defer l.obsMu.Unlock()
	l.observers = append(l.observers, o)
}

// Unsubscribe removes an observer.
func (l *Ledger) Unsubscribe(o Observer) {
	if l == nil {
		return
	}
	l.obsMu.Lock()
	defer l.obsMu.Unlock()
	for i, obs := range l.observers {
		if obs == o {
			l.observers = append(l.observers[:i], l.observers[i+1:]...)
			return
		}
	}
}

func (l *Ledger) record(e Event) {
	if l == nil {
		return
	}

	k := key{e.Handle, e.Kind}
	l.mu.Lock()
	switch e.Type {
	case EventAcquired, EventRetained:
		l.units[k]++
	case EventReleased, EventLeaked, EventReleaseFailed:
		if l.units[k] <= 1 {
			delete(l.units, k)
		} else {
			l.units[k]--
		}
	}
	l.mu.Unlock()

	l.notify(e)
}

func (l *Ledger) notify(e Event) {
	l.obsMu.RLock()
	observers := make([]Observer, len(l.observers))
	copy(observers, l.observers)
	l.obsMu.RUnlock()

	for _, o := range observers {
		o.OnLifecycleEvent(e)
	}
}
