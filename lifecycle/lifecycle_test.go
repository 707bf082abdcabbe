package lifecycle

import (
	"runtime"
	"sync"
	"testing"
	"time"

	clruntime "github.com/wippyai/cl-runtime"
)

type countingDriver struct {
	mu       sync.Mutex
	refs     map[clruntime.Handle]int
	releases map[clruntime.Handle]int
	failRel  clruntime.Status
}

func newCountingDriver(handles ...clruntime.Handle) *countingDriver {
	d := &countingDriver{refs: map[clruntime.Handle]int{}, releases: map[clruntime.Handle]int{}}
	for _, h := range handles {
		d.refs[h] = 1
	}
	return d
}

func (d *countingDriver) Retain(_ clruntime.ObjectKind, h clruntime.Handle) clruntime.Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.refs[h] == 0 {
		return clruntime.InvalidMemObject
	}
	d.refs[h]++
	return clruntime.Success
}

func (d *countingDriver) Release(_ clruntime.ObjectKind, h clruntime.Handle) clruntime.Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.releases[h]++
	if d.failRel != clruntime.Success {
		return d.failRel
	}
	if d.refs[h] == 0 {
		return clruntime.InvalidMemObject
	}
	d.refs[h]--
	return clruntime.Success
}

func (d *countingDriver) count(h clruntime.Handle) (refs, releases int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.refs[h], d.releases[h]
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) OnLifecycleEvent(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func types(events []Event) []EventType {
	out := make([]EventType, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}

func TestRetainRelease_RestoresCount(t *testing.T) {
	drv := newCountingDriver(0x10)

	if err := Retain(drv, clruntime.KindMem, 0x10); err != nil {
		t.Fatalf("Retain failed: %v", err)
	}
	if refs, _ := drv.count(0x10); refs != 2 {
		t.Fatalf("Expected 2 refs after Retain, got %d", refs)
	}
	if err := Release(drv, clruntime.KindMem, 0x10); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if refs, _ := drv.count(0x10); refs != 1 {
		t.Fatalf("Expected count restored to 1, got %d", refs)
	}
}

func TestRetainRelease_Errors(t *testing.T) {
	drv := newCountingDriver()

	if err := Retain(drv, clruntime.KindMem, 0); err == nil {
		t.Error("Retain of zero handle should fail")
	}
	if err := Release(drv, clruntime.KindMem, 0); err == nil {
		t.Error("Release of zero handle should fail")
	}

	err := Retain(drv, clruntime.KindMem, 0x99)
	st, ok := clruntime.StatusOf(err)
	if !ok || st != clruntime.InvalidMemObject {
		t.Errorf("Expected CL_INVALID_MEM_OBJECT, got %v", err)
	}
}

func TestRef_DisposeIdempotent(t *testing.T) {
	drv := newCountingDriver(0x10)
	r := Own(drv, clruntime.KindMem, 0x10, nil)

	r.Dispose()
	r.Dispose()

	if _, releases := drv.count(0x10); releases != 1 {
		t.Fatalf("Expected exactly 1 release, got %d", releases)
	}
	if r.Handle() != 0 || !r.Disposed() {
		t.Fatal("Expected disposed ref to report handle 0")
	}
}

func TestRef_ConcurrentDispose(t *testing.T) {
	drv := newCountingDriver(0x10)
	r := Own(drv, clruntime.KindMem, 0x10, nil)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Dispose()
		}()
	}
	wg.Wait()

	if _, releases := drv.count(0x10); releases != 1 {
		t.Fatalf("Expected exactly 1 release, got %d", releases)
	}
}

func TestRef_Clone(t *testing.T) {
	drv := newCountingDriver(0x10)
	ledger := NewLedger()
	rec := &recorder{}
	ledger.Subscribe(rec)

	r := Own(drv, clruntime.KindContext, 0x10, ledger)
	c, err := r.Clone()
	if err != nil {
		t.Fatalf("Clone failed: %v", err)
	}
	if n := ledger.Outstanding(clruntime.KindContext, 0x10); n != 2 {
		t.Fatalf("Expected 2 outstanding units, got %d", n)
	}

	r.Dispose()
	if c.Handle() != 0x10 {
		t.Fatal("Clone must survive disposal of the original")
	}
	c.Dispose()

	if refs, releases := drv.count(0x10); refs != 0 || releases != 2 {
		t.Fatalf("Expected refs=0 releases=2, got %d/%d", refs, releases)
	}
	if ledger.Len() != 0 {
		t.Fatalf("Expected empty ledger, got %d", ledger.Len())
	}

	want := []EventType{EventAcquired, EventRetained, EventReleased, EventReleased}
	got := types(rec.snapshot())
	if len(got) != len(want) {
		t.Fatalf("Expected events %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected events %v, got %v", want, got)
		}
	}

	if _, err := r.Clone(); err == nil {
		t.Fatal("Clone of disposed ref should fail")
	}
}

func TestRef_InvalidHandle(t *testing.T) {
	drv := newCountingDriver()
	r := Own(drv, clruntime.KindKernel, 0, nil)
	if !r.Disposed() {
		t.Fatal("Expected ref of zero handle to be disposed")
	}
	r.Dispose()
	if len(drv.releases) != 0 {
		t.Fatal("Expected no native release for zero handle")
	}
}

func TestRef_ReleaseFailureSwallowed(t *testing.T) {
	drv := newCountingDriver(0x10)
	drv.failRel = clruntime.InvalidMemObject
	ledger := NewLedger()
	rec := &recorder{}
	ledger.Subscribe(rec)

	r := Own(drv, clruntime.KindMem, 0x10, ledger)
	r.Dispose()

	events := rec.snapshot()
	if len(events) != 2 || events[1].Type != EventReleaseFailed {
		t.Fatalf("Expected release-failed event, got %v", types(events))
	}
	if events[1].Err == nil {
		t.Fatal("Expected event to carry the release error")
	}
	if ledger.Len() != 0 {
		t.Fatal("Expected failed release to clear the unit")
	}
}

func TestLedger_Each(t *testing.T) {
	drv := newCountingDriver(0x10, 0x20)
	ledger := NewLedger()
	a := Own(drv, clruntime.KindMem, 0x10, ledger)
	b := Own(drv, clruntime.KindEvent, 0x20, ledger)
	defer a.Dispose()
	defer b.Dispose()

	seen := map[clruntime.Handle]clruntime.ObjectKind{}
	ledger.Each(func(kind clruntime.ObjectKind, h clruntime.Handle, units int) bool {
		if units != 1 {
			t.Errorf("Expected 1 unit for %s, got %d", h, units)
		}
		seen[h] = kind
		return true
	})
	if len(seen) != 2 || seen[0x20] != clruntime.KindEvent {
		t.Fatalf("Unexpected ledger contents: %v", seen)
	}

	var nilLedger *Ledger
	if nilLedger.Len() != 0 || nilLedger.Outstanding(clruntime.KindMem, 0x10) != 0 {
		t.Fatal("nil ledger should report nothing")
	}
	nilLedger.Each(func(clruntime.ObjectKind, clruntime.Handle, int) bool {
		t.Fatal("nil ledger should not iterate")
		return false
	})
	rec := &recorder{}
	nilLedger.Subscribe(rec)
	nilLedger.Unsubscribe(rec)
	r := Own(newCountingDriver(0x30), clruntime.KindMem, 0x30, nilLedger)
	r.Dispose()
	if len(rec.snapshot()) != 0 {
		t.Fatalf("nil ledger delivered events: %v", rec.snapshot())
	}
}

func abandon(drv Releaser, h clruntime.Handle, ledger *Ledger) {
	Own(drv, clruntime.KindMem, h, ledger)
}

func TestRef_CleanupReleasesLeak(t *testing.T) {
	drv := newCountingDriver(0x10)
	ledger := NewLedger()
	rec := &recorder{}
	ledger.Subscribe(rec)

	abandon(drv, 0x10, ledger)

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) && len(rec.snapshot()) < 2 {
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}

	if _, releases := drv.count(0x10); releases != 1 {
		t.Fatalf("Expected cleanup to release once, got %d", releases)
	}
	events := rec.snapshot()
	if len(events) != 2 || events[1].Type != EventLeaked {
		t.Fatalf("Expected leaked event, got %v", types(events))
	}
}
