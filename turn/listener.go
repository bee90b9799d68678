package turn

// ChangeListener is notified after the turn manager's state changes: a
// rotation, a combat transition, or an entity add or remove. Adding or
// removing an effect sends no notification of its own.
type ChangeListener interface {
	Changed(tm *Manager)
}

// ChangeListenerFunc adapts a plain function to ChangeListener.
type ChangeListenerFunc func(tm *Manager)

func (f ChangeListenerFunc) Changed(tm *Manager) { f(tm) }
