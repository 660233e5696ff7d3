package viewrt

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrNotPointer is returned when a borrow target is not a non-nil pointer.
var ErrNotPointer = errors.New("viewrt: borrow target must be a non-nil pointer")

// ConflictError reports a borrow that would alias an incompatible lease.
type ConflictError struct {
	// Target is the type of the borrowed pointer.
	Target string
	// Exclusive is true when the rejected request was exclusive.
	Exclusive bool
	// Shared is the number of shared leases held at the time of the request.
	Shared int
	// Held is true when an exclusive lease was held at the time of the request.
	Held bool
}

func (e *ConflictError) Error() string {
	want := "shared"
	if e.Exclusive {
		want = "exclusive"
	}

	if e.Held {
		return fmt.Sprintf("viewrt: %s borrow of %s while exclusively borrowed", want, e.Target)
	}

	return fmt.Sprintf("viewrt: %s borrow of %s while %d shared borrow(s) are live", want, e.Target, e.Shared)
}

type hold struct {
	shared    int
	exclusive bool
}

var registry = struct {
	mu    sync.Mutex
	holds map[any]*hold
}{holds: make(map[any]*hold)}

// Lease is a live borrow of one pointer.
// The zero value and nil are released leases.
type Lease struct {
	key       any
	exclusive bool
	once      sync.Once
	mu        sync.Mutex
	deferred  []func()
}

// Acquire borrows p, which must be a non-nil pointer.
// It returns *ConflictError when the borrow would alias an incompatible lease.
func Acquire(p any, exclusive bool) (*Lease, error) {
	if rv := reflect.ValueOf(p); rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, ErrNotPointer
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	h := registry.holds[p]
	if h == nil {
		h = &hold{}
		registry.holds[p] = h
	}

	if h.exclusive || (exclusive && h.shared > 0) {
		return nil, &ConflictError{
			Target:    fmt.Sprintf("%T", p),
			Exclusive: exclusive,
			Shared:    h.shared,
			Held:      h.exclusive,
		}
	}

	if exclusive {
		h.exclusive = true
	} else {
		h.shared++
	}

	return &Lease{key: p, exclusive: exclusive}, nil
}

// TryShare acquires a shared lease on p.
func TryShare(p any) (*Lease, error) {
	return Acquire(p, false)
}

// TryExclusive acquires an exclusive lease on p.
func TryExclusive(p any) (*Lease, error) {
	return Acquire(p, true)
}

// Share acquires a shared lease on p and panics on conflict.
func Share(p any) *Lease {
	l, err := Acquire(p, false)
	if err != nil {
		panic(err)
	}

	return l
}

// Exclusive acquires an exclusive lease on p and panics on conflict.
func Exclusive(p any) *Lease {
	l, err := Acquire(p, true)
	if err != nil {
		panic(err)
	}

	return l
}

// Borrowed reports the leases currently held on p.
func Borrowed(p any) (shared int, exclusive bool) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if h := registry.holds[p]; h != nil {
		return h.shared, h.exclusive
	}

	return 0, false
}

// IsExclusive reports whether l is an exclusive lease.
func (l *Lease) IsExclusive() bool {
	return l != nil && l.exclusive
}

// Defer registers fn to run when the lease is released.
// Deferred functions run in reverse registration order.
func (l *Lease) Defer(fn func()) {
	if l == nil || fn == nil {
		return
	}

	l.mu.Lock()
	l.deferred = append(l.deferred, fn)
	l.mu.Unlock()
}

// Release ends the borrow. It is safe to call more than once.
func (l *Lease) Release() {
	if l == nil || l.key == nil {
		return
	}

	l.once.Do(func() {
		l.mu.Lock()
		deferred := l.deferred
		l.deferred = nil
		l.mu.Unlock()

		for i := len(deferred) - 1; i >= 0; i-- {
			deferred[i]()
		}

		registry.mu.Lock()
		defer registry.mu.Unlock()

		h := registry.holds[l.key]
		if h == nil {
			return
		}

		if l.exclusive {
			h.exclusive = false
		} else if h.shared > 0 {
			h.shared--
		}

		if h.shared == 0 && !h.exclusive {
			delete(registry.holds, l.key)
		}
	})
}
