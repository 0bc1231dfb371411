package t2048

// Undo steps back to the previous position. The current position moves onto
// the redo stack. With an empty history s is returned unchanged.
func Undo(s State) State {
	if len(s.history) == 0 {
		return s
	}

	prev, history := pop(s.history)
	prev.history = history
	prev.future = push(s.future, s.snapshot())
	prev.spawner = s.spawner
	return prev
}

// Redo re-applies the most recently undone position. With an empty redo
// stack s is returned unchanged.
func Redo(s State) State {
	if len(s.future) == 0 {
		return s
	}

	next, future := pop(s.future)
	next.future = future
	next.history = push(s.history, s.snapshot())
	next.spawner = s.spawner
	return next
}
