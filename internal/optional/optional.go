// Package optional distinguishes an absent value from a present zero value.
package optional

type Value[T any] struct {
	value T
	set   bool
}

func Of[T any](v T) Value[T] {
	return Value[T]{value: v, set: true}
}

func None[T any]() Value[T] {
	return Value[T]{}
}

// FromPtr maps nil to absent.
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return None[T]()
	}
	return Of(*p)
}

func (v Value[T]) IsSet() bool {
	return v.set
}

func (v Value[T]) Get() (T, bool) {
	return v.value, v.set
}

func (v Value[T]) OrElse(fallback T) T {
	if v.set {
		return v.value
	}
	return fallback
}
