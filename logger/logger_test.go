package logger

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/philipp01105/attrlog/core"
)

// recordingHandler copies what it needs out of each record; the
// record itself only lives for the duration of the call.
type recordingHandler struct {
	mu      sync.Mutex
	err     error
	entries []recorded
}

type recorded struct {
	severity int
	message  string
	pattern  string
	attrs    []core.Attribute
}

func (h *recordingHandler) Execute(r *core.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	var attrs []core.Attribute
	for _, layer := range r.Attributes() {
		attrs = append(attrs, layer...)
	}
	h.entries = append(h.entries, recorded{
		severity: r.Severity(),
		message:  r.Message(),
		pattern:  r.Pattern(),
		attrs:    attrs,
	})
	return nil
}

func (h *recordingHandler) all() []recorded {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]recorded(nil), h.entries...)
}

type panickyHandler struct{}

func (panickyHandler) Execute(*core.Record) error { panic("sink exploded") }

func captureStderr(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stderr
	stderr = &buf
	t.Cleanup(func() { stderr = old })
	return &buf
}

func TestLogger_Log(t *testing.T) {
	h := &recordingHandler{}
	l := New(h)

	l.Log(3, "hello", Int("key", 42))

	got := h.all()
	if len(got) != 1 {
		t.Fatalf("handler received %d records, want 1", len(got))
	}
	if got[0].severity != 3 || got[0].message != "hello" {
		t.Errorf("record = %+v", got[0])
	}
	if len(got[0].attrs) != 1 || got[0].attrs[0].Name != "key" {
		t.Errorf("attrs = %+v, want key", got[0].attrs)
	}
}

func TestLogger_LogWithFormatsMessage(t *testing.T) {
	h := &recordingHandler{}
	l := New(h)

	l.LogWith(1, "GET {} -> {}", []core.Attribute{Int("status", 200)}, func(w *core.Writer) {
		w.WriteString("GET /index.html -> 200")
	})

	got := h.all()
	if len(got) != 1 {
		t.Fatalf("handler received %d records, want 1", len(got))
	}
	if got[0].message != "GET /index.html -> 200" {
		t.Errorf("message = %q, want the callback's output", got[0].message)
	}
	if got[0].pattern != "GET {} -> {}" {
		t.Errorf("pattern = %q, want the raw message preserved", got[0].pattern)
	}
}

func TestLogger_Logf(t *testing.T) {
	h := &recordingHandler{}
	l := New(h)

	l.Logf(0, "HTTP%d.%d - %d OK", 1, 1, 200)

	got := h.all()
	if len(got) != 1 || got[0].message != "HTTP1.1 - 200 OK" {
		t.Fatalf("records = %+v", got)
	}
}

func TestLogger_FilterRejects(t *testing.T) {
	h := &recordingHandler{}
	l := New(h)
	l.SetFilter(MinSeverity(2))

	l.Log(1, "dropped")
	l.Log(2, "kept")

	got := h.all()
	if len(got) != 1 || got[0].message != "kept" {
		t.Errorf("records = %+v, want only the kept one", got)
	}
}

func TestLogger_SetFilterNilResets(t *testing.T) {
	h := &recordingHandler{}
	l := New(h)
	l.SetFilter(func(*core.Record) bool { return false })
	l.SetFilter(nil)

	l.Log(0, "m")
	if len(h.all()) != 1 {
		t.Error("nil filter should reset to accept-all")
	}
}

func TestLogger_FanOut(t *testing.T) {
	a := &recordingHandler{}
	b := &recordingHandler{}
	l := New(a, b)

	l.Log(0, "both")

	if len(a.all()) != 1 || len(b.all()) != 1 {
		t.Errorf("fan-out reached %d/%d handlers, want 1/1", len(a.all()), len(b.all()))
	}
}

func TestLogger_FailingHandlerDoesNotPoisonOthers(t *testing.T) {
	errs := captureStderr(t)
	failing := &recordingHandler{err: errors.New("disk full")}
	ok := &recordingHandler{}
	l := New(failing, ok)

	l.Log(0, "m")

	if len(ok.all()) != 1 {
		t.Error("second handler skipped after first failed")
	}
	if !strings.Contains(errs.String(), "disk full") {
		t.Errorf("stderr = %q, want a diagnostic", errs.String())
	}
}

func TestLogger_PanickingHandlerIsContained(t *testing.T) {
	errs := captureStderr(t)
	ok := &recordingHandler{}
	l := New(panickyHandler{}, ok)

	l.Log(0, "m")

	if len(ok.all()) != 1 {
		t.Error("second handler skipped after first panicked")
	}
	if !strings.Contains(errs.String(), "sink exploded") {
		t.Errorf("stderr = %q, want the panic value", errs.String())
	}
}

func TestLogger_PanickingFilterPropagates(t *testing.T) {
	l := New(&recordingHandler{})
	l.SetFilter(func(*core.Record) bool { panic("filter bug") })

	defer func() {
		if recover() == nil {
			t.Error("filter panic did not propagate to the caller")
		}
	}()
	l.Log(0, "m")
}

func TestLogger_SetHandlers(t *testing.T) {
	old := &recordingHandler{}
	l := New(old)

	next := &recordingHandler{}
	l.SetHandlers(next)
	l.Log(0, "m")

	if len(old.all()) != 0 || len(next.all()) != 1 {
		t.Errorf("records went to old=%d new=%d, want 0/1", len(old.all()), len(next.all()))
	}
}

func TestLogger_NoHandlers(t *testing.T) {
	l := New()
	l.Log(0, "nowhere") // must not panic
}

// Concurrent filter swaps must be linearizable: a severity both
// filters reject can never reach a handler, no matter how the swap
// interleaves with logging.
func TestLogger_ConcurrentFilterSwap(t *testing.T) {
	h := &recordingHandler{}
	l := New(h)

	low := Filter(func(r *core.Record) bool { return r.Severity() < 10 })
	high := Filter(func(r *core.Record) bool { return r.Severity() >= 20 })
	l.SetFilter(low)

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			if i%2 == 0 {
				l.SetFilter(low)
			} else {
				l.SetFilter(high)
			}
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 5000; i++ {
			l.Log(5, "low")
			l.Log(15, "rejected by both")
			l.Log(25, "high")
		}
		close(stop)
	}()

	wg.Wait()

	for _, r := range h.all() {
		if r.severity == 15 {
			t.Fatal("a record rejected by both filters reached a handler")
		}
	}
}

func TestLogger_AdoptTakesStateAndScopes(t *testing.T) {
	h := &recordingHandler{}
	a := New(h)
	b := New(&recordingHandler{})

	scope := a.Scoped(String("request", "r1"))
	b.Adopt(a)

	// b now dispatches to a's handlers and sees a's scoped layer.
	b.Log(0, "after adopt")
	got := h.all()
	if len(got) != 1 {
		t.Fatalf("adopted handler received %d records, want 1", len(got))
	}
	if len(got[0].attrs) != 1 || got[0].attrs[0].Name != "request" {
		t.Errorf("scoped attribute lost across Adopt: %+v", got[0].attrs)
	}

	// The guard now pops from the adopting logger.
	scope.Close()
	b.Log(0, "after close")
	got = h.all()
	if len(got) != 2 || len(got[1].attrs) != 0 {
		t.Errorf("scope still visible after Close: %+v", got)
	}
}
