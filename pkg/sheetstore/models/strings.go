package models

import (
	"errors"
	"fmt"
)

// ErrHandleNotFound indicates a cell references a string handle the table does not hold.
var ErrHandleNotFound = errors.New("string handle not found")

// StringTable is the document-wide shared string pool. Handles are the
// zero-based order of first insertion; entries are never removed or changed.
type StringTable struct {
	items []string
	index map[string]int
}

// NewStringTable returns a table pre-loaded with items in handle order.
// Duplicate items keep their own handles, but Intern resolves to the first.
func NewStringTable(items ...string) *StringTable {
	t := &StringTable{
		items: make([]string, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for _, s := range items {
		t.append(s)
	}
	return t
}

func (t *StringTable) append(text string) int {
	h := len(t.items)
	t.items = append(t.items, text)
	if _, ok := t.index[text]; !ok {
		t.index[text] = h
	}
	return h
}

// Intern returns the handle of the first entry equal to text, adding a new
// entry when there is none.
func (t *StringTable) Intern(text string) int {
	if h, ok := t.index[text]; ok {
		return h
	}
	return t.append(text)
}

// Resolve returns the text stored under handle.
func (t *StringTable) Resolve(handle int) (string, error) {
	if handle < 0 || handle >= len(t.items) {
		return "", fmt.Errorf("%w: %d (table holds %d)", ErrHandleNotFound, handle, len(t.items))
	}
	return t.items[handle], nil
}

// Len returns the number of entries.
func (t *StringTable) Len() int {
	return len(t.items)
}

// Items returns a copy of all entries in handle order.
func (t *StringTable) Items() []string {
	out := make([]string, len(t.items))
	copy(out, t.items)
	return out
}
