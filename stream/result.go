// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Result is the outcome of resolving an observable into a single value: either
// a success carrying the value or a failure carrying the error.
type Result[T any] struct {
	id        uuid.UUID
	createdAt time.Time
	value     T
	err       error
}

func Success[T any](value T) Result[T] {
	return Result[T]{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		value:     value,
	}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		err:       err,
	}
}

// ToResult converts a (value, error) pair into a Result.
func ToResult[T any](value T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}
	return Success(value)
}

func (r Result[T]) Value() T {
	return r.value
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

// Get returns the value and error as a pair.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// Id uniquely identifies the result, e.g. for correlating log lines.
func (r Result[T]) Id() uuid.UUID {
	return r.id
}

// CreatedAt is the time (UTC) at which the result was resolved.
func (r Result[T]) CreatedAt() time.Time {
	return r.createdAt
}

// LastValueFrom observes 'src' in the background and resolves to its last item,
// or fails with ErrEmpty if 'src' completes without emitting. Exactly one result
// is sent on the returned channel after which it is closed.
func LastValueFrom[T any](ctx context.Context, src Observable[T]) <-chan Result[T] {
	return resolve(func() Result[T] { return ToResult(Last(ctx, src)) })
}

// FirstValueFrom observes 'src' in the background and resolves to its first
// item, or fails with ErrEmpty if 'src' completes without emitting.
func FirstValueFrom[T any](ctx context.Context, src Observable[T]) <-chan Result[T] {
	return resolve(func() Result[T] { return ToResult(First(ctx, src)) })
}

func resolve[T any](f func() Result[T]) <-chan Result[T] {
	out := make(chan Result[T], 1)
	go func() {
		defer close(out)
		out <- f()
	}()
	return out
}
