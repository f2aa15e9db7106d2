package jsonx

import "encoding/json"

// Field is a generic JSON field wrapper that distinguishes between
// an omitted property, an explicit null, and a concrete value.
//
// States:
//   - Omitted: Set=false, Null=false
//   - Explicit null: Set=true, Null=true
//   - Value present: Set=true, Null=false, V holds the value
type Field[T any] struct {
	V    T
	Set  bool
	Null bool
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if len(b) == 4 && string(b) == "null" {
		f.Null = true
		return nil
	}
	return json.Unmarshal(b, &f.V)
}

// Value returns the underlying value and whether it is usable
// (key present and not null).
func (f Field[T]) Value() (T, bool) {
	return f.V, f.Set && !f.Null
}

// Wrap creates a Field[T] containing a non-null value.
func Wrap[T any](v T) Field[T] {
	return Field[T]{V: v, Set: true, Null: false}
}

// Null creates a Field[T] explicitly set to null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}
