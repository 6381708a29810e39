// Package history provides a linear undo/redo container over value
// snapshots. It backs the storefront editor, where every accepted edit
// becomes a snapshot of the whole configuration tree.
package history

// History holds an ordered sequence of snapshots and a cursor into it. The
// current value is always the snapshot under the cursor. Setting a new value
// discards any forward (redone-over) history, so undo/redo is strictly
// linear.
//
// History is not safe for concurrent use; the editor drives it from a single
// event loop.
type History[T any] struct {
	snapshots []T
	cursor    int
	limit     int
}

// New creates a history seeded with an initial value. The limit caps the
// number of retained snapshots; when exceeded, the oldest snapshots are
// evicted. A limit <= 0 means unbounded growth.
func New[T any](initial T, limit int) *History[T] {
	return &History[T]{
		snapshots: []T{initial},
		cursor:    0,
		limit:     limit,
	}
}

// Current returns the snapshot under the cursor.
func (h *History[T]) Current() T {
	return h.snapshots[h.cursor]
}

// Set truncates forward history, appends the new value and moves the cursor
// to the new tail. It always succeeds.
func (h *History[T]) Set(value T) {
	h.snapshots = append(h.snapshots[:h.cursor+1], value)
	h.cursor = len(h.snapshots) - 1

	if h.limit > 0 && len(h.snapshots) > h.limit {
		drop := len(h.snapshots) - h.limit
		h.snapshots = append([]T(nil), h.snapshots[drop:]...)
		h.cursor -= drop
	}
}

// SetFunc applies an updater to the current value and sets the result.
func (h *History[T]) SetFunc(update func(T) T) {
	h.Set(update(h.Current()))
}

// Undo moves the cursor back by one. It is a no-op at the start.
func (h *History[T]) Undo() {
	if h.cursor > 0 {
		h.cursor--
	}
}

// Redo moves the cursor forward by one. It is a no-op at the end.
func (h *History[T]) Redo() {
	if h.cursor < len(h.snapshots)-1 {
		h.cursor++
	}
}

// CanUndo reports whether an earlier snapshot exists.
func (h *History[T]) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether a later snapshot exists.
func (h *History[T]) CanRedo() bool {
	return h.cursor < len(h.snapshots)-1
}

// Len returns the number of retained snapshots.
func (h *History[T]) Len() int {
	return len(h.snapshots)
}

// Cursor returns the current cursor position.
func (h *History[T]) Cursor() int {
	return h.cursor
}
