// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Map applies a function onto an observable.
func Map[A, B any](src Observable[A], apply func(A) B) Observable[B] {
	return derive(src, FuncObservable[B](
		func(ctx context.Context, next func(B) error) error {
			return src.Observe(
				ctx,
				func(a A) error { return next(apply(a)) })
		}))
}

// FlatMap applies a function that returns an observable of Bs to the source observable of As.
// Each inner observable is observed to completion before the next item from
// 'src' is processed.
func FlatMap[A, B any](src Observable[A], apply func(A) Observable[B]) Observable[B] {
	return FuncObservable[B](
		func(ctx context.Context, next func(B) error) error {
			return src.Observe(
				ctx,
				func(a A) error {
					return apply(a).Observe(ctx, next)
				})
		})
}

// Filter keeps only the elements for which the filter function returns true.
func Filter[T any](src Observable[T], filter func(T) bool) Observable[T] {
	return derive(src, FuncObservable[T](
		func(ctx context.Context, next func(T) error) error {
			return src.Observe(
				ctx,
				func(x T) error {
					if filter(x) {
						return next(x)
					}
					return nil
				})
		}))
}

// Reduce takes an initial state, and a function 'reduce' that is called on each element
// along with a state and returns an observable with a single result state produced
// by the last call to 'reduce'.
func Reduce[T, Result any](src Observable[T], init Result, reduce func(Result, T) Result) Observable[Result] {
	return derive(src, FuncObservable[Result](
		func(ctx context.Context, next func(Result) error) error {
			result := init
			err := src.Observe(
				ctx,
				func(x T) error {
					result = reduce(result, x)
					return nil
				})
			if err != nil {
				return err
			}
			return next(result)
		}))
}

// Scan takes an initial state and a step function that is called on each element with the
// previous state and returns an observable of the states returned by the step function.
// E.g. Scan is like Reduce that emits the intermediate states.
func Scan[In, Out any](src Observable[In], init Out, step func(Out, In) Out) Observable[Out] {
	return derive(src, FuncObservable[Out](
		func(ctx context.Context, next func(Out) error) error {
			prev := init
			return src.Observe(
				ctx,
				func(x In) error {
					prev = step(prev, x)
					return next(prev)
				})
		}))
}

// Concat takes one or more observable of the same type and emits the items from each of
// them in order.
func Concat[T any](srcs ...Observable[T]) Observable[T] {
	return FuncObservable[T](
		func(ctx context.Context, next func(T) error) error {
			for _, src := range srcs {
				if err := src.Observe(ctx, next); err != nil {
					return err
				}
			}
			return nil
		})
}

type mergeNext[T any] struct {
	item T
	errs chan error
}

// Merge multiple observables into one. Error from any one of the sources will
// cancel and complete the stream. Error from downstream is propagated to the
// upstream that emitted the item.
//
// The sources are observed from goroutines spawned by Merge() and thus run
// concurrently, but 'next' is still only called from the observing goroutine.
func Merge[T any](srcs ...Observable[T]) Observable[T] {
	return FuncObservable[T](
		func(ctx context.Context, next func(T) error) error {
			eg, egCtx := errgroup.WithContext(ctx)
			items := make(chan mergeNext[T], len(srcs))

			for _, src := range srcs {
				eg.Go(func() error {
					nextErrs := make(chan error, 1)
					return src.Observe(
						egCtx,
						func(item T) error {
							select {
							case items <- mergeNext[T]{item, nextErrs}:
							case <-egCtx.Done():
								return egCtx.Err()
							}
							return <-nextErrs
						})
				})
			}

			done := make(chan error, 1)
			go func() {
				done <- eg.Wait()
				close(items)
			}()

			var nextErr error
			for req := range items {
				if nextErr == nil {
					nextErr = next(req.item)
				}
				req.errs <- nextErr
			}

			err := <-done
			if nextErr != nil {
				return nextErr
			}
			return err
		})
}

// OnNext calls the supplied function on each emitted item.
func OnNext[T any](src Observable[T], f func(T)) Observable[T] {
	return derive(src, FuncObservable[T](
		func(ctx context.Context, next func(T) error) error {
			return src.Observe(
				ctx,
				func(item T) error {
					f(item)
					return next(item)
				})
		}))
}

// Take takes 'n' items from the source 'src'.
// The context given to source observable is cancelled if it emits
// more than 'n' items. If all 'n' items were emitted this cancelled
// error is ignored.
func Take[T any](n int, src Observable[T]) Observable[T] {
	return FuncObservable[T](
		func(ctx context.Context, next func(T) error) error {
			if n <= 0 {
				return nil
			}
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()
			remaining := n
			err := src.Observe(ctx,
				func(item T) error {
					if remaining == 0 {
						return nil
					}
					if err := next(item); err != nil {
						return err
					}
					remaining--
					if remaining == 0 {
						cancel()
					}
					return nil
				})
			if remaining == 0 && errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
}

// Skip skips the first 'n' items from the source.
func Skip[T any](n int, src Observable[T]) Observable[T] {
	return derive(src, FuncObservable[T](
		func(ctx context.Context, next func(T) error) error {
			skip := n
			return src.Observe(ctx,
				func(item T) error {
					if skip > 0 {
						skip--
						return nil
					}
					return next(item)
				})
		}))
}

// Delay shifts the items emitted from source by the given duration.
func Delay[T any](src Observable[T], duration time.Duration) Observable[T] {
	return FuncObservable[T](
		func(ctx context.Context, next func(T) error) error {
			first := true
			return src.Observe(
				ctx,
				func(item T) error {
					if first {
						first = false
						timer := time.NewTimer(duration)
						defer timer.Stop()
						select {
						case <-ctx.Done():
							return ctx.Err()
						case <-timer.C:
						}
					}
					return next(item)
				})
		})
}

// Throttle limits the rate at which items are emitted.
func Throttle[T any](src Observable[T], ratePerSecond float64, burst int) Observable[T] {
	return FuncObservable[T](
		func(ctx context.Context, next func(T) error) error {
			if ratePerSecond <= 0 || burst <= 0 {
				return fmt.Errorf("Throttle: invalid rate %v or burst %d", ratePerSecond, burst)
			}
			limiter := rate.NewLimiter(rate.Limit(ratePerSecond), burst)
			return src.Observe(
				ctx,
				func(item T) error {
					if err := limiter.Wait(ctx); err != nil {
						return err
					}
					return next(item)
				})
		})
}

//
// Retrying and error handling
//

// RetryFunc decides whether the processing should be retried for the given error
type RetryFunc func(err error) bool

// Retry resubscribes to the observable if it completes with an error.
func Retry[T any](src Observable[T], shouldRetry RetryFunc) Observable[T] {
	return FuncObservable[T](
		func(ctx context.Context, next func(T) error) error {
			for {
				err := src.Observe(ctx, next)
				if err == nil || ctx.Err() != nil || !shouldRetry(err) {
					return err
				}
			}
		})
}

// LimitRetries limits the number of retries with the given retry method.
func LimitRetries(shouldRetry RetryFunc, numRetries int) RetryFunc {
	return func(err error) bool {
		if numRetries <= 0 {
			return false
		}
		numRetries--
		return shouldRetry(err)
	}
}

// AlwaysRetry always asks for a retry regardless of the error.
func AlwaysRetry(err error) bool {
	return true
}
