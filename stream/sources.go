// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream

import (
	"context"
	"time"
)

//
// Sources, e.g. operators that create new observables.
//

// Just creates an observable with a single item.
func Just[T any](item T) Observable[T] {
	return syncObservable[T]{
		func(ctx context.Context, next func(T) error) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return next(item)
		}}
}

// Of creates an observable that emits the given items in order.
func Of[T any](items ...T) Observable[T] {
	return FromSlice(items)
}

// Stuck creates an observable that never emits anything and
// just waits for the context to be cancelled.
// Mainly meant for testing.
func Stuck[T any]() Observable[T] {
	return FuncObservable[T](
		func(ctx context.Context, next func(T) error) error {
			<-ctx.Done()
			return ctx.Err()
		})
}

// Error creates an observable that fails immediately with given error.
func Error[T any](err error) Observable[T] {
	return syncObservable[T]{
		func(ctx context.Context, next func(T) error) error {
			return err
		}}
}

// Empty creates an empty observable that completes immediately.
func Empty[T any]() Observable[T] {
	return Error[T](nil)
}

// FromSlice converts a slice into an Observable.
func FromSlice[T any](items []T) Observable[T] {
	return syncObservable[T]{
		func(ctx context.Context, next func(T) error) error {
			for _, item := range items {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := next(item); err != nil {
					return err
				}
			}
			return nil
		}}
}

// FromChannel creates an observable from a channel. The channel is consumed
// by the first observer.
func FromChannel[T any](in <-chan T) Observable[T] {
	return FuncObservable[T](
		func(ctx context.Context, next func(T) error) error {
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				select {
				case <-ctx.Done():
					return ctx.Err()
				case v, ok := <-in:
					if !ok {
						return nil
					}
					if err := next(v); err != nil {
						return err
					}
				}
			}
		})
}

// FromFunction creates an observable that emits the result of calling 'f'
// once per observer.
func FromFunction[T any](f func() T) Observable[T] {
	return syncObservable[T]{
		func(ctx context.Context, next func(T) error) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return next(f())
		}}
}

// Interval emits an increasing counter value every 'interval' period.
func Interval(interval time.Duration) Observable[int] {
	return FuncObservable[int](
		func(ctx context.Context, next func(int) error) error {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for i := 0; ; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-ticker.C:
					if err := next(i); err != nil {
						return err
					}
				}
			}
		})
}

// Range creates an observable that emits integers in range from...to-1.
func Range(from, to int) Observable[int] {
	return syncObservable[int]{
		func(ctx context.Context, next func(int) error) error {
			for i := from; i < to; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := next(i); err != nil {
					return err
				}
			}
			return nil
		}}
}
