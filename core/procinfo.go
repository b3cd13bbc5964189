package core

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

var pid = os.Getpid()

// PID returns the current process id, captured once at startup.
func PID() int { return pid }

var (
	procnameOnce sync.Once
	procname     string
)

// ProcessName returns the short name of the running executable,
// discovered on first use. Falls back to "unknown" when the
// executable path cannot be resolved.
func ProcessName() string {
	procnameOnce.Do(func() {
		if exe, err := os.Executable(); err == nil {
			procname = filepath.Base(exe)
		} else {
			procname = "unknown"
		}
	})
	return procname
}

// GoroutineID returns the id of the calling goroutine. The id is
// stable for the goroutine's lifetime, which is the only property
// records rely on. Parsing the stack header costs about a microsecond,
// so callers on hot paths obtain it once and pass it along.
func GoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	// Header shape: "goroutine 123 [running]:"
	s := buf[len("goroutine "):n]
	var id uint64
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}
