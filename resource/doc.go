// Package resource provides a reference-counted handle table for boxed values.
//
// Object-typed array elements cannot hold Go pointers in raw bytes, so the
// codec stores a small integer handle instead. The Table maps those handles
// back to Go values and keeps each value alive while any slot (or caller)
// holds a reference to it.
//
// # Reference Lifecycle
//
//	table := resource.NewTable()
//
//	h, err := table.Acquire(value) // refs = 1
//	err = table.Retain(h)          // refs = 2
//	v, ok := table.Get(h)          // does not change refs
//	err = table.Release(h)         // refs = 1
//	err = table.Release(h)         // refs = 0, value freed
//
// Handle 0 means "empty": Release(0) is a no-op and Get(0) reports false.
// Releasing a handle that is not live returns an invalid_handle error.
// Freed handles are reused by later acquisitions.
//
// # Observers
//
// Register observers to track lifecycle events:
//
//	table.Subscribe(obs) // obs implements OnResourceEvent(resource.Event)
//
// Events are EventAcquired, EventRetained, EventReleased and EventFreed,
// delivered after the table lock is released.
//
// # Cleanup
//
// Values implementing Dropper have Drop called once when their last
// reference goes away, or when the table is closed.
package resource
