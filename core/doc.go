// Package core defines the shared types of the attrlog record
// pipeline.
//
// It provides the Record type that carries one log event, the
// Attribute/Value pair for structured key-value data, the View and
// Pack types that stack attribute layers without copying them, and
// the Writer that formatters render into.
//
// Value encodes every kind into a fixed numeric slot plus one string
// slot, so ints, bools and floats never escape to the heap. A Pack is
// a stack of borrowed layers searched innermost-first; records
// reference the caller's slices directly and never survive the log
// call frame, which is what keeps that borrowing safe.
//
// Writer starts on a 512-byte inline array and doubles onto the heap
// on overflow. Spec implements the brace-format mini language
// (fill/align/sign/width/precision/type) used by both the writer and
// the pattern formatter; spec parsing happens once at pattern
// compilation, application once per rendered token.
package core
