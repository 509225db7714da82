// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream

import (
	"context"
	"errors"
	"slices"

	"golang.org/x/sync/errgroup"
)

type combineEvent[T any] struct {
	index int
	item  T
	ack   chan error
}

// errCompletedEmpty stops the combination when one of the sources completes
// without ever emitting. It never escapes CombineLatest.
var errCompletedEmpty = errors.New("source completed without emitting")

// CombineLatest combines the latest items from each of the sources into a slice.
// Nothing is emitted until every source has emitted at least once, after which
// a new snapshot is emitted each time any source emits.
//
// Sources are subscribed in order. Synchronous sources are drained at the time
// they are subscribed, asynchronous ones are observed concurrently and their
// items are handed to 'next' from the observing goroutine. The stream
// completes when all sources have completed, or immediately without emitting
// if a source completes without producing an item.
func CombineLatest[T any](srcs ...Observable[T]) Observable[[]T] {
	f := FuncObservable[[]T](
		func(ctx context.Context, next func([]T) error) error {
			if len(srcs) == 0 {
				return nil
			}

			latest := make([]T, len(srcs))
			seen := make([]bool, len(srcs))
			missing := len(srcs)
			update := func(index int, item T) error {
				if !seen[index] {
					seen[index] = true
					missing--
				}
				latest[index] = item
				if missing > 0 {
					return nil
				}
				return next(slices.Clone(latest))
			}

			combineCtx, cancel := context.WithCancel(ctx)
			defer cancel()
			eg, egCtx := errgroup.WithContext(combineCtx)
			events := make(chan combineEvent[T])

			var err error
			for index, src := range srcs {
				if IsSynchronous(src) {
					emitted := false
					err = src.Observe(
						egCtx,
						func(item T) error {
							emitted = true
							return update(index, item)
						})
					if err == nil && !emitted {
						err = errCompletedEmpty
					}
					if err != nil {
						cancel()
						break
					}
					continue
				}

				eg.Go(func() error {
					ack := make(chan error, 1)
					emitted := false
					err := src.Observe(
						egCtx,
						func(item T) error {
							emitted = true
							select {
							case events <- combineEvent[T]{index, item, ack}:
							case <-egCtx.Done():
								return egCtx.Err()
							}
							return <-ack
						})
					if err == nil && !emitted {
						return errCompletedEmpty
					}
					return err
				})
			}

			groupDone := make(chan error, 1)
			go func() {
				groupDone <- eg.Wait()
				close(events)
			}()

			for ev := range events {
				if err == nil {
					if err = update(ev.index, ev.item); err != nil {
						cancel()
					}
				}
				ev.ack <- err
			}

			groupErr := <-groupDone
			if err == nil || (errors.Is(err, context.Canceled) && groupErr != nil) {
				err = groupErr
			}
			if errors.Is(err, errCompletedEmpty) {
				return nil
			}
			return err
		})

	for _, src := range srcs {
		if !IsSynchronous(src) {
			return f
		}
	}
	return syncObservable[[]T]{f}
}

// ToAny converts an observable of T into an observable of 'any', e.g. to combine
// sources of different types with CombineLatest.
func ToAny[T any](src Observable[T]) Observable[any] {
	return Map(src, func(x T) any { return x })
}

// CombineLatest2 is CombineLatest for two sources of different types.
func CombineLatest2[V1, V2 any](src1 Observable[V1], src2 Observable[V2]) Observable[Tuple2[V1, V2]] {
	return Map(
		CombineLatest(ToAny(src1), ToAny(src2)),
		func(xs []any) Tuple2[V1, V2] {
			return Tuple2[V1, V2]{V1: as[V1](xs[0]), V2: as[V2](xs[1])}
		})
}

// CombineLatest3 is CombineLatest for three sources of different types.
func CombineLatest3[V1, V2, V3 any](src1 Observable[V1], src2 Observable[V2], src3 Observable[V3]) Observable[Tuple3[V1, V2, V3]] {
	return Map(
		CombineLatest(ToAny(src1), ToAny(src2), ToAny(src3)),
		func(xs []any) Tuple3[V1, V2, V3] {
			return Tuple3[V1, V2, V3]{V1: as[V1](xs[0]), V2: as[V2](xs[1]), V3: as[V3](xs[2])}
		})
}

// as converts 'x' to T, mapping a nil interface to the zero value.
func as[T any](x any) T {
	v, _ := x.(T)
	return v
}
