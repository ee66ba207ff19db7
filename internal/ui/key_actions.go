package ui

import (
	"sort"
	"sync"

	"github.com/derailed/tcell/v2"
)

// Rune key shortcuts registered as actions.
const (
	KeySlash    = tcell.Key('/')
	KeyColon    = tcell.Key(':')
	KeyQuestion = tcell.Key('?')
	KeySpace    = tcell.Key(' ')
	KeyD        = tcell.Key('d')
	KeyE        = tcell.Key('e')
	KeyQ        = tcell.Key('q')
	KeyU        = tcell.Key('u')
	KeyW        = tcell.Key('w')
	KeyX        = tcell.Key('x')
	KeyY        = tcell.Key('y')
	KeyShiftG   = tcell.Key('G')
)

// ActionHandler handles a key press.
type ActionHandler func(*tcell.EventKey) *tcell.EventKey

// KeyAction represents a keyboard action.
type KeyAction struct {
	Description string
	Action      ActionHandler
	Visible     bool
}

// NewKeyAction returns a new keyboard action.
func NewKeyAction(d string, a ActionHandler, visible bool) KeyAction {
	return KeyAction{Description: d, Action: a, Visible: visible}
}

// KeyMap tracks key to action mappings.
type KeyMap map[tcell.Key]KeyAction

// KeyActions tracks mappings between keystrokes and actions.
type KeyActions struct {
	actions KeyMap
	mx      sync.RWMutex
}

// NewKeyActions returns a new instance.
func NewKeyActions() *KeyActions {
	return &KeyActions{actions: make(KeyMap)}
}

// Get fetches an action given a key.
func (a *KeyActions) Get(key tcell.Key) (KeyAction, bool) {
	a.mx.RLock()
	defer a.mx.RUnlock()

	v, ok := a.actions[key]
	return v, ok
}

// Add adds a key binding.
func (a *KeyActions) Add(key tcell.Key, action KeyAction) {
	a.mx.Lock()
	defer a.mx.Unlock()
	a.actions[key] = action
}

// Bulk adds a set of key bindings.
func (a *KeyActions) Bulk(km KeyMap) {
	a.mx.Lock()
	defer a.mx.Unlock()

	for k, v := range km {
		a.actions[k] = v
	}
}

// Delete removes bindings for the given keys.
func (a *KeyActions) Delete(kk ...tcell.Key) {
	a.mx.Lock()
	defer a.mx.Unlock()

	for _, k := range kk {
		delete(a.actions, k)
	}
}

// Clear removes all bindings.
func (a *KeyActions) Clear() {
	a.mx.Lock()
	defer a.mx.Unlock()

	for k := range a.actions {
		delete(a.actions, k)
	}
}

// Len returns the number of bindings.
func (a *KeyActions) Len() int {
	a.mx.RLock()
	defer a.mx.RUnlock()
	return len(a.actions)
}

// Hints returns menu hints for visible actions.
func (a *KeyActions) Hints() MenuHints {
	a.mx.RLock()
	defer a.mx.RUnlock()

	hints := make(MenuHints, 0, len(a.actions))
	for key, action := range a.actions {
		if !action.Visible {
			continue
		}
		hints = append(hints, MenuHint{
			Mnemonic:    keyName(key),
			Description: action.Description,
			Visible:     true,
		})
	}
	sort.Sort(hints)
	return hints
}

// keyName renders a key for display in the menu.
func keyName(key tcell.Key) string {
	if name, ok := tcell.KeyNames[key]; ok {
		return name
	}
	return string(rune(key))
}
