// Package namelock implements the autocomplete-and-lock behavior of the
// character name field as a finite-state machine with two states, Free and
// Locked. It is pure logic: the UI feeds it text-changed and backspace
// events and renders whatever text it reports back.
package namelock

import "strings"

// State is the lock state of the field.
type State int

// The machine starts Free. Typing a prefix that matches exactly one known
// name completes the field and moves to Locked; backspace or clearing the
// field moves back to Free.
const (
	Free State = iota
	Locked
)

// Lock tracks the field text against a list of known names.
type Lock struct {
	names []string
	state State
	text  string
}

// New creates a Lock over the given name list.
func New(names []string) *Lock {
	return &Lock{names: names}
}

// SetNames replaces the name list. The current state is kept.
func (l *Lock) SetNames(names []string) {
	l.names = names
}

// Text returns the current field text.
func (l *Lock) Text() string {
	return l.text
}

// State returns the current state.
func (l *Lock) State() State {
	return l.state
}

// IsLocked reports whether the field is locked.
func (l *Lock) IsLocked() bool {
	return l.state == Locked
}

// TextChanged feeds a new field value into the machine and returns the text
// the field should now show. When the trimmed value matches exactly one
// name case-insensitively by containment, and that name starts with the
// typed prefix, the field completes to the full name and locks. Deleting
// characters or clearing the field never locks.
func (l *Lock) TextChanged(text string) (string, State) {
	trimmed := strings.TrimSpace(text)
	deleting := len(trimmed) < len(strings.TrimSpace(l.text))

	if trimmed == "" {
		l.state = Free
		l.text = text
		return l.text, l.state
	}
	if l.state == Locked {
		// A locked field only changes through Backspace or Reset.
		return l.text, l.state
	}
	l.text = text
	if deleting {
		return l.text, l.state
	}

	match, unique := l.uniqueMatch(trimmed)
	if unique && strings.HasPrefix(strings.ToLower(match), strings.ToLower(trimmed)) {
		l.text = match
		l.state = Locked
	}
	return l.text, l.state
}

// Backspace unlocks the field if needed and deletes the final rune,
// returning the resulting text.
func (l *Lock) Backspace() string {
	l.state = Free
	runes := []rune(l.text)
	if len(runes) > 0 {
		l.text = string(runes[:len(runes)-1])
	}
	return l.text
}

// Reset clears the field and unlocks it.
func (l *Lock) Reset() {
	l.state = Free
	l.text = ""
}

// Matches returns the names containing the trimmed text,
// case-insensitively. An empty text matches nothing.
func (l *Lock) Matches(text string) []string {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return nil
	}
	var out []string
	for _, n := range l.names {
		if strings.Contains(strings.ToLower(n), t) {
			out = append(out, n)
		}
	}
	return out
}

// uniqueMatch reports the single containment match for text, if exactly one
// exists.
func (l *Lock) uniqueMatch(text string) (string, bool) {
	matches := l.Matches(text)
	if len(matches) == 1 {
		return matches[0], true
	}
	return "", false
}
