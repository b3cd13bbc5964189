package logger

import (
	"sync"
	"sync/atomic"

	"github.com/philipp01105/attrlog/core"
)

// scopeRegistry holds one scope stack per goroutine. Only the owning
// goroutine pushes and pops its stack; the registry lock protects the
// map and the stack links, the count lets the hot path skip all of it
// when no scopes exist anywhere.
type scopeRegistry struct {
	mu    sync.Mutex
	count atomic.Int64
	tops  map[uint64]*Scope
}

func newScopeRegistry() *scopeRegistry {
	return &scopeRegistry{tops: make(map[uint64]*Scope)}
}

func (r *scopeRegistry) active() bool {
	return r.count.Load() > 0
}

func (r *scopeRegistry) push(attrs []core.Attribute) *Scope {
	gid := core.GoroutineID()
	s := &Scope{gid: gid, attrs: core.View(attrs)}
	s.reg.Store(r)

	r.mu.Lock()
	s.prev = r.tops[gid]
	r.tops[gid] = s
	r.count.Add(1)
	r.mu.Unlock()
	return s
}

// collect returns the calling goroutine's scope layers innermost
// first, ready to prepend onto a record's attribute pack.
func (r *scopeRegistry) collect(gid uint64) core.Pack {
	r.mu.Lock()
	defer r.mu.Unlock()

	top := r.tops[gid]
	if top == nil {
		return nil
	}
	var pack core.Pack
	for s := top; s != nil; s = s.prev {
		if len(s.attrs) > 0 {
			pack = append(pack, s.attrs)
		}
	}
	return pack
}

// adopt moves every stack of src into r, re-pointing the live guards
// so they keep popping the stack they pushed. A goroutine with scopes
// on both loggers keeps src's stack; r's own is discarded, matching
// assignment semantics.
func (r *scopeRegistry) adopt(src *scopeRegistry) {
	if r == src {
		return
	}
	src.mu.Lock()
	r.mu.Lock()
	for gid, top := range src.tops {
		n := int64(0)
		for s := top; s != nil; s = s.prev {
			s.reg.Store(r)
			n++
		}
		r.tops[gid] = top
		delete(src.tops, gid)
		src.count.Add(-n)
		r.count.Add(n)
	}
	r.mu.Unlock()
	src.mu.Unlock()
}

// Scope is a guard for one pushed attribute layer. Close pops the
// layer; guards must close in reverse construction order on the
// goroutine that created them. Violations are programming errors and
// panic.
type Scope struct {
	reg    atomic.Pointer[scopeRegistry]
	gid    uint64
	attrs  core.View
	prev   *Scope
	closed bool
}

// Close pops the guard's layer from its goroutine's stack.
func (s *Scope) Close() {
	var reg *scopeRegistry
	for {
		reg = s.reg.Load()
		reg.mu.Lock()
		if s.reg.Load() == reg {
			break
		}
		// The scope moved to another logger between load and lock.
		reg.mu.Unlock()
	}
	defer reg.mu.Unlock()

	if s.closed {
		panic("attrlog: scope closed twice")
	}
	if core.GoroutineID() != s.gid {
		panic("attrlog: scope closed on a different goroutine")
	}
	if reg.tops[s.gid] != s {
		panic("attrlog: scope closed out of LIFO order")
	}

	if s.prev != nil {
		reg.tops[s.gid] = s.prev
	} else {
		delete(reg.tops, s.gid)
	}
	s.closed = true
	reg.count.Add(-1)
}
