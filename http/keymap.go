package http

import "strings"

// keyMap is a string-keyed map that compares keys case-insensitively and
// iterates in the order keys were first inserted. A key keeps the spelling
// of its first insertion; later writes replace only the value. Lowercasing uses Unicode
// simple folding, so results do not depend on the process locale.
type keyMap struct {
	index   map[string]int
	entries []keyEntry
}

type keyEntry struct {
	key   string
	value string
}

func newKeyMap() *keyMap {
	return &keyMap{index: make(map[string]int)}
}

// set stores value under key. An existing entry keeps its position but takes
// the new spelling of the key and the new value.
func (m *keyMap) set(key, value string) {
	norm := strings.ToLower(key)
	if i, ok := m.index[norm]; ok {
		m.entries[i].value = value
		return
	}
	m.index[norm] = len(m.entries)
	m.entries = append(m.entries, keyEntry{key: key, value: value})
}

func (m *keyMap) get(key string) (string, bool) {
	i, ok := m.index[strings.ToLower(key)]
	if !ok {
		return "", false
	}
	return m.entries[i].value, true
}

func (m *keyMap) len() int {
	return len(m.entries)
}

// each calls fn for every entry in insertion order.
func (m *keyMap) each(fn func(key, value string)) {
	for _, e := range m.entries {
		fn(e.key, e.value)
	}
}
