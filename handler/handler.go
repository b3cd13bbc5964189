package handler

import (
	"sync"

	"github.com/philipp01105/attrlog/core"
	"github.com/philipp01105/attrlog/formatter"
)

// Sink is a destination for formatted bytes. The buffer is only valid
// for the duration of the call; sinks that retain it must copy.
type Sink interface {
	Emit(p []byte) error
}

// Handler processes one record: format it, hand the bytes to a sink.
// Errors propagate to the logger, which contains them per handler so
// no single sink can silence the others.
type Handler interface {
	Execute(r *core.Record) error
}

// maxPooledWriter keeps a single huge log line from permanently
// inflating the writer pool.
const maxPooledWriter = 64 * 1024

// Basic pairs a formatter with a sink. Writers are pooled across
// executions.
type Basic struct {
	formatter formatter.Formatter
	sink      Sink
	pool      sync.Pool
}

// New creates a handler dispatching formatted records to sink.
func New(f formatter.Formatter, s Sink) *Basic {
	b := &Basic{formatter: f, sink: s}
	b.pool.New = func() interface{} {
		return new(core.Writer)
	}
	return b
}

// Execute formats the record and emits the bytes.
func (b *Basic) Execute(r *core.Record) error {
	w := b.pool.Get().(*core.Writer)
	w.Reset()

	err := b.formatter.Format(r, w)
	if err == nil {
		err = b.sink.Emit(w.Bytes())
	}

	if w.Cap() <= maxPooledWriter {
		b.pool.Put(w)
	}
	return err
}
