// Package logger is the public API of attrlog. Most users only need
// to import this package.
//
// A Logger pairs a swappable filter with a list of handlers. Each log
// call loads one atomic snapshot of that pair and works from it, so
// readers never lock against each other and a concurrent SetFilter or
// SetHandlers is observed all-or-nothing. Severities are plain ints
// with application-assigned meaning; MinSeverity builds the usual
// threshold filter.
//
// Scoped attributes attach a layer to every record logged by the
// calling goroutine until the returned guard closes:
//
//	scope := log.Scoped(logger.String("request", id))
//	defer scope.Close()
//
// Guards verify LIFO order and goroutine ownership; breaking either
// is a programming error and panics.
//
// Per record, the logger merges scoped layers with the call's
// attributes, runs the filter, renders the message, and fans out to
// every handler inside a failure boundary: a failing handler is
// reported to standard error and the next one still runs. The filter
// and the message callback are the caller's own code and are not
// shielded.
//
// The package initializes a default logger (pattern format to
// stdout); the package-level Log, Logf and Scoped delegate to it.
package logger
