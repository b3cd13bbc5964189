package core

import "time"

// inlineCapacity is the writer's stack capacity. Most rendered log
// lines fit without touching the heap.
const inlineCapacity = 512

// Writer is a grow-on-overflow byte buffer handed to formatters. It
// starts on an inline array and doubles onto the heap when it runs
// out. The zero value is ready to use. A Writer must not be copied
// after its first write.
type Writer struct {
	buf []byte
	arr [inlineCapacity]byte
}

func (w *Writer) grow(n int) {
	if w.buf == nil {
		w.buf = w.arr[:0]
	}
	if len(w.buf)+n <= cap(w.buf) {
		return
	}
	newCap := 2 * cap(w.buf)
	for newCap < len(w.buf)+n {
		newCap *= 2
	}
	next := make([]byte, len(w.buf), newCap)
	copy(next, w.buf)
	w.buf = next
}

// Write appends p. It never fails; the error is there for io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	w.grow(len(p))
	w.buf = append(w.buf, p...)
	return len(p), nil
}

// WriteString appends s.
func (w *Writer) WriteString(s string) {
	w.grow(len(s))
	w.buf = append(w.buf, s...)
}

// WriteByte appends a single byte.
func (w *Writer) WriteByte(c byte) error {
	w.grow(1)
	w.buf = append(w.buf, c)
	return nil
}

// AppendTime appends t rendered under a Go reference layout.
func (w *Writer) AppendTime(t time.Time, layout string) {
	w.grow(len(layout) + 8)
	w.buf = t.AppendFormat(w.buf, layout)
}

// AppendValue appends the default textual rendering of v.
func (w *Writer) AppendValue(v Value) {
	if w.buf == nil {
		w.buf = w.arr[:0]
	}
	w.buf = v.AppendText(w.buf)
}

// Format applies a brace-format spec to a value.
func (w *Writer) Format(spec Spec, v Value) error {
	return spec.Apply(w, v)
}

// Bytes returns the accumulated view. Valid until the next write or
// reset.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// String returns a copy of the accumulated bytes.
func (w *Writer) String() string {
	return string(w.buf)
}

// Len returns the number of accumulated bytes.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Cap returns the current capacity, inline or heap.
func (w *Writer) Cap() int {
	if w.buf == nil {
		return inlineCapacity
	}
	return cap(w.buf)
}

// Reset drops the accumulated bytes but keeps the capacity.
func (w *Writer) Reset() {
	if w.buf != nil {
		w.buf = w.buf[:0]
	}
}
