package logger

import "github.com/philipp01105/attrlog/core"

// Filter is a pure predicate over a record, evaluated before any
// formatting work. Filters run on the caller's goroutine and are not
// wrapped: a panicking filter aborts the log call.
type Filter func(*core.Record) bool

// AcceptAll is the default filter.
func AcceptAll(*core.Record) bool { return true }

// MinSeverity accepts records at or above the threshold.
func MinSeverity(threshold int) Filter {
	return func(r *core.Record) bool {
		return r.Severity() >= threshold
	}
}
