package types

import (
	"container/list"

	"golang.org/x/text/cases"
)

// OptionMap is an insertion-ordered string map with case-insensitive keys.
// The spelling of the first occurrence of a key is preserved. The zero value
// is an empty map ready to use.
type OptionMap struct {
	store map[string]*list.Element
	keys  *list.List
}

type entry struct {
	key   string
	value string
}

// NewOptionMap creates an empty OptionMap.
func NewOptionMap() *OptionMap {
	return &OptionMap{}
}

func foldKey(key string) string {
	return cases.Fold().String(key)
}

// Set stores value under key, replacing the value of an existing key while
// keeping its position.
func (m *OptionMap) Set(key, value string) {
	if m.store == nil {
		m.store = map[string]*list.Element{}
		m.keys = list.New()
	}

	folded := foldKey(key)
	if e, ok := m.store[folded]; ok {
		e.Value = entry{key: e.Value.(entry).key, value: value}
		return
	}

	m.store[folded] = m.keys.PushBack(entry{key: key, value: value})
}

// Get returns the value stored under key.
func (m *OptionMap) Get(key string) (string, bool) {
	if m == nil || m.store == nil {
		return "", false
	}
	e, ok := m.store[foldKey(key)]
	if !ok {
		return "", false
	}

	return e.Value.(entry).value, true
}

// Delete removes key.
func (m *OptionMap) Delete(key string) {
	if m == nil || m.store == nil {
		return
	}
	folded := foldKey(key)
	if e, ok := m.store[folded]; ok {
		m.keys.Remove(e)
		delete(m.store, folded)
	}
}

// Len returns the number of entries.
func (m *OptionMap) Len() int {
	if m == nil || m.keys == nil {
		return 0
	}
	return m.keys.Len()
}

// Keys returns the keys in insertion order.
func (m *OptionMap) Keys() []string {
	keys := make([]string, 0, m.Len())
	m.Range(func(k, _ string) bool {
		keys = append(keys, k)
		return true
	})

	return keys
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *OptionMap) Range(fn func(key, value string) bool) {
	if m == nil || m.keys == nil {
		return
	}
	for e := m.keys.Front(); e != nil; e = e.Next() {
		kv := e.Value.(entry)
		if !fn(kv.key, kv.value) {
			return
		}
	}
}

// ToMap copies the entries into a plain map.
func (m *OptionMap) ToMap() map[string]string {
	out := make(map[string]string, m.Len())
	m.Range(func(k, v string) bool {
		out[k] = v
		return true
	})

	return out
}
