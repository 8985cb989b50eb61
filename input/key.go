package input

import (
	"fmt"
	"strings"
)

// Key identifies a keyboard key or mouse button. Values are small and dense
// so they can key a sparse set directly.
type Key int

const (
	KeyUnknown Key = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	MouseLeft
	MouseRight
	MouseMiddle

	keyCount
)

var keyNames = func() [keyCount]string {
	var names [keyCount]string
	names[KeyUnknown] = "unknown"
	for k := KeyA; k <= KeyZ; k++ {
		names[k] = string(rune('a' + int(k-KeyA)))
	}
	for k := Key0; k <= Key9; k++ {
		names[k] = string(rune('0' + int(k-Key0)))
	}
	for k := KeyF1; k <= KeyF12; k++ {
		names[k] = fmt.Sprintf("f%d", int(k-KeyF1)+1)
	}
	names[KeySpace] = "space"
	names[KeyEnter] = "enter"
	names[KeyEscape] = "escape"
	names[KeyTab] = "tab"
	names[KeyBackspace] = "backspace"
	names[KeyUp] = "up"
	names[KeyDown] = "down"
	names[KeyLeft] = "left"
	names[KeyRight] = "right"
	names[MouseLeft] = "mouse_left"
	names[MouseRight] = "mouse_right"
	names[MouseMiddle] = "mouse_middle"
	return names
}()

var keyAliases = map[string]Key{
	"esc":    KeyEscape,
	"return": KeyEnter,
	"bs":     KeyBackspace,
}

// Keys returns every known key in declaration order.
func Keys() []Key {
	keys := make([]Key, 0, keyCount-1)
	for k := KeyUnknown + 1; k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// Index returns the slot the key occupies in a sparse set.
func (k Key) Index() int { return int(k) }

// Valid reports whether k is a known key.
func (k Key) Valid() bool { return k > KeyUnknown && k < keyCount }

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

// ParseKey resolves a key name as returned by String. Matching ignores case
// and accepts a few common aliases such as "esc".
func ParseKey(name string) (Key, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyAliases[n]; ok {
		return k, nil
	}
	for k := KeyUnknown + 1; k < keyCount; k++ {
		if keyNames[k] == n {
			return k, nil
		}
	}
	return KeyUnknown, fmt.Errorf("input: parse key %q: %w", name, ErrUnknownKey)
}
