package viewrt

// Result holds the outcome of a fallible operation: Value when Err is nil,
// otherwise Err.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok returns a successful Result holding v.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fail returns a failed Result holding err.
func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// IsOk reports whether the result carries a value.
func (r Result[T]) IsOk() bool {
	return r.Err == nil
}

// Get returns the value and the error.
func (r Result[T]) Get() (T, error) {
	return r.Value, r.Err
}
