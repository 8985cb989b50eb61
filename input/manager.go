package input

import (
	"errors"

	"github.com/milk9111/glyphgrid/collection"
)

var ErrUnknownKey = errors.New("input: unknown key")

// Manager tracks which keys are held. A key is present while it is pressed;
// its value records whether it was already held at the last Update, so
// IsDown is true only on the frame a key went down.
type Manager struct {
	state *collection.SparseSet[Key, bool]
}

func NewManager() *Manager {
	return &Manager{state: collection.New[Key, bool](Key.Index)}
}

// OnKey records a press or release. Presses of a key that is already held
// restart its edge.
func (m *Manager) OnKey(k Key, pressed bool) {
	if m == nil || !k.Valid() {
		return
	}
	if pressed {
		m.state.Set(k, false)
		return
	}
	m.state.Remove(k)
}

// Update marks every pressed key as held. Call it once per frame after the
// frame's input has been consumed.
func (m *Manager) Update() {
	if m == nil {
		return
	}
	for i := 0; i < m.state.Len(); i++ {
		_ = m.state.Update(i, func(held *bool) { *held = true })
	}
}

// IsPressed reports whether k is currently down.
func (m *Manager) IsPressed(k Key) bool {
	if m == nil {
		return false
	}
	return m.state.Has(k)
}

// IsDown reports whether k went down since the last Update.
func (m *Manager) IsDown(k Key) bool {
	if m == nil {
		return false
	}
	held, err := m.state.Get(k)
	return err == nil && !held
}

// Pressed returns the keys currently down, in storage order.
func (m *Manager) Pressed() []Key {
	if m == nil {
		return nil
	}
	return append([]Key(nil), m.state.Keys()...)
}

// Reset releases every key.
func (m *Manager) Reset() {
	if m == nil {
		return
	}
	m.state.Clear()
}
