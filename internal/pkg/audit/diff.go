package audit

import (
	"github.com/google/go-cmp/cmp"
)

// Field names one comparable attribute of T and how to read it.
type Field[T any] struct {
	Name string
	Get  func(*T) (any, error)
}

// Change one modified field
type Change struct {
	Field string
	Old   any
	New   any
}

// ChangeSet changes in field declaration order
type ChangeSet []Change

func (c ChangeSet) Empty() bool { return len(c) == 0 }

// Has reports whether field is among the changes.
func (c ChangeSet) Has(field string) bool {
	for _, ch := range c {
		if ch.Field == field {
			return true
		}
	}
	return false
}

// Get returns the change recorded for field.
func (c ChangeSet) Get(field string) (Change, bool) {
	for _, ch := range c {
		if ch.Field == field {
			return ch, true
		}
	}
	return Change{}, false
}

var excludedFields = map[string]struct{}{
	"created_at": {},
	"updated_at": {},
	"id":         {},
	"is_deleted": {},
}

// Diff compares before and after over fields. A nil before yields no changes;
// fields whose getter fails on either side are skipped.
func Diff[T any](before, after *T, fields []Field[T]) ChangeSet {
	changes := ChangeSet{}
	if before == nil || after == nil {
		return changes
	}
	for _, f := range fields {
		if _, skip := excludedFields[f.Name]; skip {
			continue
		}
		oldValue, err := f.Get(before)
		if err != nil {
			continue
		}
		newValue, err := f.Get(after)
		if err != nil {
			continue
		}
		if !cmp.Equal(oldValue, newValue) {
			changes = append(changes, Change{Field: f.Name, Old: oldValue, New: newValue})
		}
	}
	return changes
}
