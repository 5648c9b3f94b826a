// Package table implements the open-addressed hash table (linear probing,
// tombstones) used for the VM's global symbol table.
package table

import "github.com/theosovv/linen/internal/lang/bytecode"

const (
	initialCapacity = 8
	maxLoadFactor   = 0.75
)

type entry struct {
	key   *bytecode.ObjString // nil key = never used or tombstone
	value bytecode.Value
}

// Table is an open-addressed hash table keyed by interned string objects.
// An empty key with a Nil value means the bucket was never used; an empty
// key with a non-Nil value marks a tombstone. Count includes tombstones, so
// they contribute to load factor but are reused on insertion.
type Table struct {
	count   int // live entries + tombstones
	entries []entry
}

// New returns an empty table; storage is allocated lazily on first Set.
func New() *Table {
	return &Table{}
}

// Get looks up key. Returns the stored value and true on a hit, or the
// zero Value and false on a miss.
func (t *Table) Get(key *bytecode.ObjString) (bytecode.Value, bool) {
	if len(t.entries) == 0 {
		return bytecode.Value{}, false
	}
	e := t.find(key)
	if e.key == nil {
		return bytecode.Value{}, false
	}
	return e.value, true
}

// Has reports whether key is present (live, not a tombstone).
func (t *Table) Has(key *bytecode.ObjString) bool {
	_, ok := t.Get(key)
	return ok
}

// Set inserts or overwrites key's value. Returns true if this created a new
// entry (key was not already present), false if it overwrote an existing
// one.
func (t *Table) Set(key *bytecode.ObjString, value bytecode.Value) bool {
	if float64(t.count+1) > float64(len(t.entries))*maxLoadFactor {
		t.grow()
	}

	e := t.find(key)
	isNew := e.key == nil
	if isNew && e.value.IsNil() {
		// Brand new bucket (not a reused tombstone): count grows.
		t.count++
	}
	e.key = key
	e.value = value
	return isNew
}

// Delete removes key, leaving a tombstone in its probe slot so later probes
// that passed through it still find their target. Returns true if key was
// present.
func (t *Table) Delete(key *bytecode.ObjString) bool {
	if len(t.entries) == 0 {
		return false
	}
	e := t.find(key)
	if e.key == nil {
		return false
	}
	e.key = nil
	e.value = bytecode.Bool(true) // tombstone sentinel: empty key, non-Nil value
	return true
}

// find probes for key starting at hash%capacity, returning the entry where
// it either lives or would be inserted. The first tombstone seen along the
// probe chain is remembered and reused if the key is not already present,
// so Set never grows the table unnecessarily by skipping reusable slots.
func (t *Table) find(key *bytecode.ObjString) *entry {
	capacity := len(t.entries)
	index := int(key.Hash) % capacity
	var tombstone *entry

	for {
		e := &t.entries[index]
		if e.key == nil {
			if e.value.IsNil() {
				// Truly empty bucket: miss.
				if tombstone != nil {
					return tombstone
				}
				return e
			}
			// Tombstone.
			if tombstone == nil {
				tombstone = e
			}
		} else if e.key == key || (e.key.Hash == key.Hash && e.key.Chars == key.Chars) {
			return e
		}
		index = (index + 1) % capacity
	}
}

func (t *Table) grow() {
	newCapacity := initialCapacity
	if len(t.entries) > 0 {
		newCapacity = len(t.entries) * 2
	}
	old := t.entries
	t.entries = make([]entry, newCapacity)
	t.count = 0

	for _, e := range old {
		if e.key == nil {
			continue // drop tombstones on rehash
		}
		dst := t.find(e.key)
		dst.key = e.key
		dst.value = e.value
		t.count++
	}
}

// Count returns the number of live (non-tombstone) entries.
func (t *Table) Count() int {
	live := 0
	for _, e := range t.entries {
		if e.key != nil {
			live++
		}
	}
	return live
}
