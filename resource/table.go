package resource

import (
	stderrors "errors"
	"sync"

	"github.com/wippyai/ndcodec/errors"
)

var ErrClosed = stderrors.New("resource table closed")

// Table maps handles to boxed values and counts references to each.
// A value stays alive until its reference count drops to zero.
type Table struct {
	entries   []entry
	freeList  []Handle
	observers []Observer
	mu        sync.RWMutex
	obsMu     sync.RWMutex
	closed    bool
}

type entry struct {
	value any
	refs  uint32
	valid bool
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		entries:  make([]entry, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

var (
	defaultTable *Table
	defaultOnce  sync.Once
)

// Default returns the process-wide table used when no table is configured.
func Default() *Table {
	defaultOnce.Do(func() {
		defaultTable = NewTable()
	})
	return defaultTable
}

// Acquire boxes value and returns a new handle holding one reference.
func (t *Table) Acquire(value any) (Handle, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0, ErrClosed
	}

	e := entry{value: value, refs: 1, valid: true}
	var handle Handle
	if n := len(t.freeList); n > 0 {
		handle = t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		t.entries[handle-1] = e
	} else {
		t.entries = append(t.entries, e)
		handle = Handle(len(t.entries))
	}
	t.mu.Unlock()

	t.notify(Event{Type: EventAcquired, Handle: handle, Refs: 1, Value: value})
	return handle, nil
}

// Retain adds a reference to a live handle.
func (t *Table) Retain(handle Handle) error {
	t.mu.Lock()
	e := t.lookup(handle)
	if e == nil {
		t.mu.Unlock()
		return errors.InvalidHandle(errors.PhaseResource, uint32(handle))
	}
	e.refs++
	ev := Event{Type: EventRetained, Handle: handle, Refs: e.refs, Value: e.value}
	t.mu.Unlock()

	t.notify(ev)
	return nil
}

// Release drops one reference. The value is freed, and its Drop method
// called if it has one, when the last reference goes away.
// Releasing handle 0 is a no-op.
func (t *Table) Release(handle Handle) error {
	if handle == 0 {
		return nil
	}

	t.mu.Lock()
	e := t.lookup(handle)
	if e == nil {
		t.mu.Unlock()
		return errors.InvalidHandle(errors.PhaseResource, uint32(handle))
	}
	e.refs--
	value := e.value
	refs := e.refs
	if refs == 0 {
		e.valid = false
		e.value = nil
		t.freeList = append(t.freeList, handle)
	}
	t.mu.Unlock()

	t.notify(Event{Type: EventReleased, Handle: handle, Refs: refs, Value: value})
	if refs == 0 {
		if d, ok := value.(Dropper); ok {
			d.Drop()
		}
		t.notify(Event{Type: EventFreed, Handle: handle, Value: value})
	}
	return nil
}

// Get returns the value behind a live handle without touching its count.
func (t *Table) Get(handle Handle) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e := t.lookup(handle)
	if e == nil {
		return nil, false
	}
	return e.value, true
}

// Refs returns the reference count of a handle, 0 if it is not live.
func (t *Table) Refs(handle Handle) uint32 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e := t.lookup(handle)
	if e == nil {
		return 0
	}
	return e.refs
}

// Len returns the number of live values.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries) - len(t.freeList)
}

// Each calls fn for every live value until fn returns false.
// fn must not call back into the table.
func (t *Table) Each(fn func(Handle, any) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i := range t.entries {
		if !t.entries[i].valid {
			continue
		}
		if !fn(Handle(i+1), t.entries[i].value) {
			return
		}
	}
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Close drops every live value regardless of its count and rejects
// further acquisitions.
func (t *Table) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true

	var dropped []any
	for i := range t.entries {
		if t.entries[i].valid {
			dropped = append(dropped, t.entries[i].value)
		}
	}
	t.entries = nil
	t.freeList = nil
	t.mu.Unlock()

	for _, v := range dropped {
		if d, ok := v.(Dropper); ok {
			d.Drop()
		}
	}
	return nil
}

// lookup returns the live entry for handle. Caller holds mu.
func (t *Table) lookup(handle Handle) *entry {
	if handle == 0 {
		return nil
	}
	idx := int(handle) - 1
	if idx >= len(t.entries) {
		return nil
	}
	e := &t.entries[idx]
	if !e.valid {
		return nil
	}
	return e
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
