package result

import (
	"errors"
	"fmt"
)

// Partial holds either a value of type T or the *Error explaining why no
// value could be produced. The zero Partial is a failure with code Unknown.
type Partial[T any] struct {
	value T
	err   *Error
	ok    bool
}

// Success wraps v.
func Success[T any](v T) Partial[T] {
	return Partial[T]{value: v, ok: true}
}

// FailWith builds a failed Partial carrying only a status code.
func FailWith[T any](code StatusCode) Partial[T] {
	return Partial[T]{err: &Error{Code: code}}
}

// Fail converts err into a failed Partial. An *Error or StatusCode anywhere in
// the chain keeps its code; any other error is recorded as Unknown.
func Fail[T any](err error) Partial[T] {
	if err == nil {
		panic("result: Fail called with nil error")
	}
	var e *Error
	if errors.As(err, &e) {
		return Partial[T]{err: e}
	}
	var code StatusCode
	if errors.As(err, &code) {
		return Partial[T]{err: &Error{Code: code}}
	}
	return Partial[T]{err: &Error{Code: Unknown, Detail: err.Error(), cause: err}}
}

// From adapts a (value, error) pair.
func From[T any](v T, err error) Partial[T] {
	if err != nil {
		return Fail[T](err)
	}
	return Success(v)
}

// Ok reports whether p holds a value.
func (p Partial[T]) Ok() bool {
	return p.ok
}

// Code returns the failure status. Calling it on a success is a bug.
func (p Partial[T]) Code() StatusCode {
	if p.ok {
		panic("result: Code called on a successful Partial")
	}
	return p.failure().Code
}

// Value returns the held value. Calling it on a failure is a bug.
func (p Partial[T]) Value() T {
	if !p.ok {
		panic(fmt.Sprintf("result: Value called on a failed Partial (%v)", p.failure()))
	}
	return p.value
}

// Err returns nil for a success and the *Error otherwise.
func (p Partial[T]) Err() error {
	if p.ok {
		return nil
	}
	return p.failure()
}

// Get unpacks p into the usual (value, error) pair.
func (p Partial[T]) Get() (T, error) {
	if p.ok {
		return p.value, nil
	}
	var zero T
	return zero, p.failure()
}

// OrElse returns the held value or fallback.
func (p Partial[T]) OrElse(fallback T) T {
	if p.ok {
		return p.value
	}
	return fallback
}

func (p Partial[T]) failure() *Error {
	if p.err == nil {
		return &Error{Code: Unknown}
	}
	return p.err
}

// Bind applies f to the value held by p, or forwards p's failure.
func Bind[T, U any](p Partial[T], f func(T) Partial[U]) Partial[U] {
	if !p.ok {
		return Partial[U]{err: p.failure()}
	}
	return f(p.value)
}

// Map transforms the value held by p.
func Map[T, U any](p Partial[T], f func(T) U) Partial[U] {
	if !p.ok {
		return Partial[U]{err: p.failure()}
	}
	return Success(f(p.value))
}

// Then runs next only if p succeeded, discarding p's value.
func Then[T, U any](p Partial[T], next func() Partial[U]) Partial[U] {
	if !p.ok {
		return Partial[U]{err: p.failure()}
	}
	return next()
}
