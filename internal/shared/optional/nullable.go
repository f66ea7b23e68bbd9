// Package optional carries request fields that must tell "not sent" apart from
// "sent as null".
package optional

import "encoding/json"

// Nullable is a tri-state JSON field: absent (Set=false), explicit null
// (Set=true, Value=nil) or a value.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func Of[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// UnmarshalJSON is only invoked by encoding/json when the key is present,
// including when its value is null.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Set || n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// ApplyTo overwrites *dst only when the field was sent.
func (n Nullable[T]) ApplyTo(dst **T) {
	if !n.Set {
		return
	}
	if n.Value == nil {
		*dst = nil
		return
	}
	v := *n.Value
	*dst = &v
}
