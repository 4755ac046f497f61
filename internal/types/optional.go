package types

import (
	"bytes"
	"encoding/json"
)

// Optional is a tri-state field for partial updates: absent, explicitly
// null, or set to a value. Absent fields leave the record untouched; null
// clears an optional column.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null returns an Optional that was explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// Has reports whether the field carries a non-null value.
func (o Optional[T]) Has() bool {
	return o.Set && !o.Null
}

// ApplyTo copies the value into dst when one was supplied. Null is ignored
// because dst cannot represent it.
func (o Optional[T]) ApplyTo(dst *T) {
	if o.Has() {
		*dst = o.Value
	}
}

// ApplyToPtr copies the value into dst, or clears dst on explicit null.
func (o Optional[T]) ApplyToPtr(dst **T) {
	if !o.Set {
		return
	}
	if o.Null {
		*dst = nil
		return
	}
	v := o.Value
	*dst = &v
}

// UnmarshalJSON is only invoked for keys present in the document, which is
// what distinguishes "absent" from "null".
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Value = zero
		o.Null = true
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON encodes absent and null fields as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Has() {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
