// Package listsync centralizes the reconciliation rules every admin list view
// follows after a write action: apply the server's typed result to the
// in-memory list mirror without a refetch, and leave the list untouched on
// any failure. Having one reducer instead of per-screen ad hoc mutation keeps
// the rules unit-testable and identical across entities.
package listsync

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"coursehub/admin-api/internal/action"
)

// Identifiable is what a list entity must expose for the synchronizer:
// stable identity plus its sort position.
type Identifiable interface {
	GetID() primitive.ObjectID
	GetOrderIndex() int
}

// ErrMutationInFlight is returned by Begin when the row already has a pending
// mutation. This is UI-level mutual exclusion only; it does not guard two
// different staff sessions racing on the same row — the database stays the
// source of truth and last write wins there.
var ErrMutationInFlight = errors.New("a mutation for this row is already in flight")

// Notice is the single transient notification a mutation ends in.
type Notice struct {
	Success bool
	Message string
}

// List is the in-memory mirror of one admin screen's entity list. It is not
// safe for concurrent use; a screen has a single event loop.
type List[T Identifiable] struct {
	items      []T
	inFlight   map[primitive.ObjectID]bool
	newPending bool // a create (no id yet) is in flight

	// lastErrors holds the field-keyed messages of the most recent failed
	// mutation, for rendering under the offending inputs. Cleared by the
	// next successful mutation.
	lastErrors action.FieldErrors
}

// New builds a list mirror from the server-fetched initial state.
func New[T Identifiable](initial []T) *List[T] {
	items := make([]T, len(initial))
	copy(items, initial)
	return &List[T]{
		items:    items,
		inFlight: make(map[primitive.ObjectID]bool),
	}
}

// Items returns a copy of the current list state.
func (l *List[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items in the mirror.
func (l *List[T]) Len() int { return len(l.items) }

// FieldErrors returns the field messages of the last failed mutation, or nil.
func (l *List[T]) FieldErrors() action.FieldErrors { return l.lastErrors }

// BeginCreate marks a create as in flight. Only one unconfirmed create is
// allowed at a time (the form is disabled while pending).
func (l *List[T]) BeginCreate() error {
	if l.newPending {
		return ErrMutationInFlight
	}
	l.newPending = true
	return nil
}

// Begin marks a row mutation (update or delete) as in flight. A row being
// edited rejects a delete and vice versa.
func (l *List[T]) Begin(id primitive.ObjectID) error {
	if l.inFlight[id] {
		return ErrMutationInFlight
	}
	l.inFlight[id] = true
	return nil
}

// ApplyCreate reconciles the result of a create action. On success the new
// entity is inserted at its ordering position (orderIndex ascending, ties
// after existing items); on any failure the list is unchanged.
func (l *List[T]) ApplyCreate(res action.Result[T]) Notice {
	l.newPending = false
	if !res.IsOK() || res.Data == nil {
		return l.fail(res)
	}

	item := *res.Data
	pos := len(l.items)
	for i, existing := range l.items {
		if existing.GetOrderIndex() > item.GetOrderIndex() {
			pos = i
			break
		}
	}
	l.items = append(l.items, item)
	copy(l.items[pos+1:], l.items[pos:])
	l.items[pos] = item

	l.lastErrors = nil
	return Notice{Success: true, Message: res.Message}
}

// ApplyUpdate reconciles the result of an update action: the matching-id
// element is replaced in place, preserving list position.
func (l *List[T]) ApplyUpdate(res action.Result[T]) Notice {
	if !res.IsOK() || res.Data == nil {
		if res.IsOK() {
			// An ok update with no echoed entity cannot be reconciled
			// without a refetch, which this pattern forbids.
			return Notice{Success: false, Message: "update result did not include the entity"}
		}
		return l.fail(res)
	}

	item := *res.Data
	delete(l.inFlight, item.GetID())
	for i, existing := range l.items {
		if existing.GetID() == item.GetID() {
			l.items[i] = item
			l.lastErrors = nil
			return Notice{Success: true, Message: res.Message}
		}
	}
	// Row vanished locally between submit and response; treat as failure
	// rather than appending in an arbitrary position.
	return Notice{Success: false, Message: "updated row is no longer in the list"}
}

// ApplyDelete reconciles the result of a delete action for the given row id.
// The item is removed only on success; a not-found failure (already deleted
// by another session) surfaces as a failure notice and leaves the list in
// its last-known-good state.
func (l *List[T]) ApplyDelete(id primitive.ObjectID, res action.Result[T]) Notice {
	delete(l.inFlight, id)
	if !res.IsOK() {
		return l.fail(res)
	}

	for i, existing := range l.items {
		if existing.GetID() == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			break
		}
	}
	l.lastErrors = nil
	return Notice{Success: true, Message: res.Message}
}

func (l *List[T]) fail(res action.Result[T]) Notice {
	l.lastErrors = res.Errors
	msg := res.Message
	if msg == "" {
		msg = "something went wrong"
	}
	return Notice{Success: false, Message: msg}
}
