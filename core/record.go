package core

import "time"

// Record is one log event: severity, message, attribute stack and the
// intrinsic metadata captured at construction. Once the first handler
// sees a record no field mutates; records are plain values that never
// survive the log call frame, so the attribute layers they reference
// always outlive them.
type Record struct {
	severity  int
	message   string
	formatted string
	activated bool
	attrs     Pack
	timestamp time.Time
	pid       int
	tid       uint64
}

// New constructs a record, capturing timestamp, pid and the calling
// goroutine's id.
func New(severity int, message string, attrs Pack) Record {
	return NewWithTID(severity, message, attrs, GoroutineID())
}

// NewWithTID is New for callers that already hold the goroutine id.
func NewWithTID(severity int, message string, attrs Pack, tid uint64) Record {
	return Record{
		severity:  severity,
		message:   message,
		attrs:     attrs,
		timestamp: time.Now(),
		pid:       pid,
		tid:       tid,
	}
}

// NewAt constructs a record with explicit intrinsic metadata instead
// of capturing it. Meant for deterministic replay and tests; New is
// the production path.
func NewAt(severity int, message string, attrs Pack, ts time.Time, pid int, tid uint64) Record {
	return Record{
		severity:  severity,
		message:   message,
		attrs:     attrs,
		timestamp: ts,
		pid:       pid,
		tid:       tid,
	}
}

// Severity returns the application-assigned severity.
func (r *Record) Severity() int { return r.severity }

// Message returns the rendered message once the record is activated,
// the raw pattern before that.
func (r *Record) Message() string {
	if r.activated {
		return r.formatted
	}
	return r.message
}

// Pattern returns the raw message as passed to the log call.
func (r *Record) Pattern() string { return r.message }

// Activate sets the rendered message. It may be called at most once,
// before the record reaches its first handler.
func (r *Record) Activate(formatted string) {
	if r.activated {
		panic("attrlog: record activated twice")
	}
	r.formatted = formatted
	r.activated = true
}

// Attributes returns the record's attribute layer stack, innermost
// layer first.
func (r *Record) Attributes() Pack { return r.attrs }

// Timestamp returns the wall-clock instant of construction.
func (r *Record) Timestamp() time.Time { return r.timestamp }

// PID returns the process id.
func (r *Record) PID() int { return r.pid }

// TID returns the opaque id of the goroutine that produced the record.
func (r *Record) TID() uint64 { return r.tid }
