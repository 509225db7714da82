// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

//
// Test helpers
//

func assertSlice[T any](t *testing.T, what string, expected []T, actual []T) {
	t.Helper()
	require.Equal(t, expected, actual, what)
}

func assertNil(t *testing.T, what string, err error) {
	t.Helper()
	require.NoError(t, err, what)
}

// checkCancelled observes 'src' with an already cancelled context and expects
// nothing to be emitted.
func checkCancelled[T any](t *testing.T, what string, src Observable[T]) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := ToSlice(ctx, src)
	require.Truef(t, errors.Is(err, context.Canceled), "%s: expected Canceled error, got %v", what, err)
	assertSlice(t, what, []T{}, result)
}

// fromCallback creates an observable that is fed by the returned 'emit' function
// and completed by 'complete'.
// Unsafe in general as this creates a hot observable that only has sane
// behaviour with a single observer.
func fromCallback[T any](bufSize int) (emit func(T), complete func(error), obs Observable[T]) {
	items := make(chan T, bufSize)
	errs := make(chan error, bufSize)

	emit = func(x T) {
		items <- x
	}

	complete = func(err error) {
		errs <- err
	}

	obs = FuncObservable[T](
		func(ctx context.Context, next func(T) error) error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case err := <-errs:
					return err
				case item := <-items:
					if err := next(item); err != nil {
						return err
					}
				}
			}
		})

	return
}
