package fileoutput

// Value holds a configuration value that is either a literal or resolved
// from the current record at render time. The zero Value is unset.
type Value[T any] struct {
	literal  T
	resolver func(Record) T
	set      bool
}

// Static wraps a literal value.
func Static[T any](v T) Value[T] {
	return Value[T]{literal: v, set: true}
}

// Resolve wraps a resolver evaluated against the record on every render.
// A nil resolver yields an unset Value.
func Resolve[T any](fn func(Record) T) Value[T] {
	if fn == nil {
		return Value[T]{}
	}
	return Value[T]{resolver: fn, set: true}
}

// IsSet reports whether a literal or resolver was configured.
func (v Value[T]) IsSet() bool {
	return v.set
}

// Eval returns the configured value, calling the resolver with record when present.
func (v Value[T]) Eval(record Record) T {
	if v.resolver != nil {
		return v.resolver(record)
	}
	return v.literal
}

// EvalOr is Eval with a fallback for an unset Value.
func (v Value[T]) EvalOr(record Record, fallback T) T {
	if !v.set {
		return fallback
	}
	return v.Eval(record)
}
