package models

import (
	"bytes"
	"encoding/json"
)

// Optional is a tri-state JSON field used in partial updates. It
// distinguishes a field that was absent from the request body (Set == false,
// leave the stored value unchanged) from one that was explicitly null
// (Set && !Valid, clear the stored value) and one that carries a value.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Some returns an Optional carrying a value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

// Null returns an Optional that was explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// Ptr returns the value as a pointer, or nil when the field was null.
// It must only be called when Set is true.
func (o Optional[T]) Ptr() *T {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// UnmarshalJSON is only invoked for fields present in the document, so Set
// is always true here; absent fields keep the zero Optional.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}
