// Package handler dispatches formatted records to byte sinks.
//
// A Handler owns a formatter and a sink: Execute renders the record
// into a pooled writer and emits the bytes. Errors from either side
// propagate to the logger, which reports them and moves on to the
// next handler, so a failing sink never silences the rest.
//
// Sinks are deliberately small: WriterSink serializes onto any
// io.Writer, FileSink appends to a file. The core pipeline is
// synchronous end to end; BufferedSink is the escape hatch for slow
// destinations, wrapping any sink with a bounded queue, an overflow
// policy (DropNewest, DropOldest, or Block with timeout) and atomic
// counters for dropped, blocked and processed buffers.
package handler
