// Package collection provides an observable ordered list and a selection
// manager that keeps exactly one item of such a list selected.
//
// [List] notifies its observers synchronously after each mutation with a
// typed [Event]. Mutations made by an observer while an event is being
// delivered are queued and delivered afterwards, so every observer sees the
// events in the order the mutations happened and indexes always refer to the
// list as it was right after the mutation that produced them.
//
// [Selection] subscribes to a List and maintains the single-selection
// invariant across adds, removals, resets and explicit selection changes.
//
// Neither type is safe for concurrent use; callers serialize access (the
// application runs every mutation on one event loop).
package collection
