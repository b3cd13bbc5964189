// Package formatter defines how log records are rendered into bytes.
//
// Two formatters are provided. Pattern compiles a brace-style pattern
// ("{severity:d}, [{timestamp}]: {message}") into a token list at
// construction time; rendering walks the list and writes straight
// into the caller's writer, so the hot path never re-parses the
// pattern. JSON builds a routed tree per record using RFC 6901
// pointers and serializes it compactly.
//
// Both formatters implement the Formatter interface consumed by
// handlers. Rendering errors (a required attribute missing from the
// record, a format spec applied to the wrong value kind) abort the
// record for that handler only; construction errors (bad pattern,
// bad pointer) fail fast.
package formatter
