package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/philipp01105/attrlog/core"
	"github.com/philipp01105/attrlog/handler"
)

// stderr is a variable to allow capturing diagnostics in tests.
var stderr io.Writer = os.Stderr

// inner is the logger's shared state: one filter plus the handler
// list. It is immutable once published; mutations clone and swap.
type inner struct {
	filter   Filter
	handlers []handler.Handler
}

// Logger dispatches records to its handlers. Readers load one
// atomic snapshot of {filter, handlers} per log call and work from
// it, so concurrent filter or handler swaps are never observed torn.
// All methods are safe for concurrent use.
type Logger struct {
	state  atomic.Pointer[inner]
	mu     sync.Mutex
	scopes *scopeRegistry
}

// adoptMu serializes Adopt calls across all loggers so two loggers
// can lock each other without ordering concerns.
var adoptMu sync.Mutex

// New creates a logger that accepts every record and dispatches to
// the given handlers.
func New(handlers ...handler.Handler) *Logger {
	l := &Logger{scopes: newScopeRegistry()}
	l.state.Store(&inner{
		filter:   AcceptAll,
		handlers: append([]handler.Handler(nil), handlers...),
	})
	return l
}

// Builder provides a fluent API for building Logger instances.
type Builder struct {
	filter   Filter
	handlers []handler.Handler
}

// NewBuilder creates a new logger builder.
func NewBuilder() *Builder {
	return &Builder{filter: AcceptAll}
}

// WithHandlers appends handlers.
func (b *Builder) WithHandlers(handlers ...handler.Handler) *Builder {
	b.handlers = append(b.handlers, handlers...)
	return b
}

// WithFilter sets the initial filter.
func (b *Builder) WithFilter(f Filter) *Builder {
	if f != nil {
		b.filter = f
	}
	return b
}

// Build creates the Logger instance.
func (b *Builder) Build() *Logger {
	l := New(b.handlers...)
	l.SetFilter(b.filter)
	return l
}

// Log emits a record with the message as-is.
func (l *Logger) Log(severity int, message string, attrs ...core.Attribute) {
	l.consume(severity, message, attrs, nil)
}

// LogWith emits a record whose message is produced by fn writing into
// a stack writer; the raw message stays available as the record's
// pattern.
func (l *Logger) LogWith(severity int, message string, attrs []core.Attribute, fn func(*core.Writer)) {
	l.consume(severity, message, attrs, fn)
}

// Logf emits a record with an fmt-style formatted message.
func (l *Logger) Logf(severity int, format string, args ...interface{}) {
	l.consume(severity, format, nil, func(w *core.Writer) {
		fmt.Fprintf(w, format, args...)
	})
}

func (l *Logger) consume(severity int, message string, attrs []core.Attribute, fn func(*core.Writer)) {
	state := l.state.Load()
	if len(state.handlers) == 0 {
		return
	}

	// Scoped layers go innermost, then the caller's attributes.
	var tid uint64
	var pack core.Pack
	if l.scopes.active() {
		tid = core.GoroutineID()
		pack = l.scopes.collect(tid)
	}
	if len(attrs) > 0 {
		pack = append(pack, core.View(attrs))
	}

	var record core.Record
	if tid != 0 {
		record = core.NewWithTID(severity, message, pack, tid)
	} else {
		record = core.New(severity, message, pack)
	}

	// The filter and the format callback are the caller's own code;
	// panics from either abort the log call and propagate.
	if !state.filter(&record) {
		return
	}

	if fn != nil {
		var w core.Writer
		fn(&w)
		record.Activate(w.String())
	}

	for _, h := range state.handlers {
		l.execute(h, &record)
	}
}

// execute is the failure boundary around one handler: a throwing
// sink or formatter cannot skip the handlers after it.
func (l *Logger) execute(h handler.Handler, r *core.Record) {
	defer func() {
		if p := recover(); p != nil {
			fmt.Fprintf(stderr, "logging core error occurred: %v\n", p)
		}
	}()
	if err := h.Execute(r); err != nil {
		fmt.Fprintf(stderr, "logging core error occurred: %v\n", err)
	}
}

// SetFilter publishes a new filter. In-flight log calls finish with
// the snapshot they captured.
func (l *Logger) SetFilter(f Filter) {
	if f == nil {
		f = AcceptAll
	}
	l.mu.Lock()
	cur := l.state.Load()
	l.state.Store(&inner{filter: f, handlers: cur.handlers})
	l.mu.Unlock()
}

// SetHandlers publishes a new handler list.
func (l *Logger) SetHandlers(handlers ...handler.Handler) {
	l.mu.Lock()
	cur := l.state.Load()
	l.state.Store(&inner{
		filter:   cur.filter,
		handlers: append([]handler.Handler(nil), handlers...),
	})
	l.mu.Unlock()
}

// Scoped pushes an attribute layer for the calling goroutine. Every
// record logged by this goroutine carries the layer until the
// returned guard is closed. Guards must not outlive the logger.
func (l *Logger) Scoped(attrs ...core.Attribute) *Scope {
	return l.scopes.push(attrs)
}

// Adopt is the assignment analog for loggers: l takes over src's
// state snapshot and its live scope guards, which from now on pop
// from l. Where both loggers hold scopes for the same goroutine,
// src's stack wins.
func (l *Logger) Adopt(src *Logger) {
	if l == src {
		return
	}
	adoptMu.Lock()
	defer adoptMu.Unlock()

	src.mu.Lock()
	state := src.state.Load()
	src.mu.Unlock()

	l.mu.Lock()
	l.state.Store(state)
	l.mu.Unlock()

	l.scopes.adopt(src.scopes)
}
