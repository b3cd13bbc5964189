package handler

import (
	"io"
	"os"
	"sync"
)

// WriterSink serializes emits onto an io.Writer. Concurrent handlers
// sharing one destination go through the same mutex.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink wraps an io.Writer. A nil writer defaults to stdout.
func NewWriterSink(w io.Writer) *WriterSink {
	if w == nil {
		w = os.Stdout
	}
	return &WriterSink{w: w}
}

// Emit writes the buffer in one call under the sink's lock.
func (s *WriterSink) Emit(p []byte) error {
	s.mu.Lock()
	_, err := s.w.Write(p)
	s.mu.Unlock()
	return err
}

// FileSink appends formatted records to a file.
type FileSink struct {
	mu   sync.Mutex
	file *os.File
}

// NewFileSink opens (or creates) the file in append mode.
func NewFileSink(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return &FileSink{file: f}, nil
}

// Emit appends the buffer to the file.
func (s *FileSink) Emit(p []byte) error {
	s.mu.Lock()
	_, err := s.file.Write(p)
	s.mu.Unlock()
	return err
}

// Sync flushes the file to stable storage.
func (s *FileSink) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Sync()
}

// Close closes the underlying file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
