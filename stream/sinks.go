// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream

import (
	"context"
	"errors"
)

//
// Sinks: operators that run an observable and send the output somewhere.
//

// ErrEmpty is returned by First and Last when the source completes without
// emitting anything.
var ErrEmpty = errors.New("no elements in sequence")

// ToSlice converts an Observable into a slice.
func ToSlice[T any](ctx context.Context, src Observable[T]) (items []T, err error) {
	items = make([]T, 0)
	err = src.Observe(
		ctx,
		func(item T) error {
			items = append(items, item)
			return nil
		})
	return
}

// Discard discards all items from 'src' and returns an error if any.
func Discard[T any](ctx context.Context, src Observable[T]) error {
	return src.Observe(ctx, func(item T) error { return nil })
}

// First returns the first item from 'src' observable and then closes it.
// Fails with ErrEmpty if 'src' completes without emitting.
func First[T any](ctx context.Context, src Observable[T]) (item T, err error) {
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	found := false
	err = src.Observe(subCtx,
		func(x T) error {
			if !found {
				item = x
				found = true
				cancel()
			}
			return nil
		})
	if found {
		// The source was stopped by us, ignore the cancellation.
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			err = nil
		}
		return
	}
	if err == nil {
		err = ErrEmpty
	}
	return
}

// Last returns the last item emitted by 'src' once it has completed.
// Fails with ErrEmpty if 'src' completes without emitting.
func Last[T any](ctx context.Context, src Observable[T]) (item T, err error) {
	found := false
	err = src.Observe(ctx,
		func(x T) error {
			item = x
			found = true
			return nil
		})
	if err == nil && !found {
		err = ErrEmpty
	}
	return
}

// ToChannels converts an observable into an item channel and error channel.
// When the source closes both channels are closed and an error (which may be nil)
// is always sent to the error channel.
func ToChannels[T any](ctx context.Context, src Observable[T]) (<-chan T, <-chan error) {
	out := make(chan T, 1)
	errs := make(chan error, 1)
	go func() {
		errs <- src.Observe(
			ctx,
			func(item T) error {
				select {
				case out <- item:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			})
		close(out)
		close(errs)
	}()
	return out, errs
}
