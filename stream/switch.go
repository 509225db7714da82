// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream

import (
	"context"
	"sync"
)

type switchEvent[T any] struct {
	// gen identifies the inner observable that produced the event.
	gen  int
	item T
	ack  chan error

	// done is set when the inner observable completed, with 'err'
	// being its result.
	done bool
	err  error
}

// SwitchMap applies 'apply' to each item from 'src' and emits the items of the
// resulting inner observable. Only the most recent inner observable is active:
// when a new item arrives from 'src' the context of the previous inner observable
// is cancelled and anything it emits afterwards is discarded.
//
// Synchronous inner observables (see IsSynchronous) are observed inline and
// thus always complete before the next item from 'src' is processed. Others are
// observed from a goroutine. 'src' is always observed from a goroutine so that
// inner items can be delivered while 'src' is idle.
//
// The stream completes when 'src' and the last inner observable have completed.
func SwitchMap[A, B any](src Observable[A], apply func(A) Observable[B]) Observable[B] {
	return switchMap(src, apply, nil)
}

// SwitchScan is like Scan, but the step function returns an observable. Each item
// emitted by the step observable becomes the new state and is emitted downstream.
// As with SwitchMap, a new item from 'src' cancels the step observable started
// for the previous item.
func SwitchScan[In, Out any](src Observable[In], init Out, step func(Out, In) Observable[Out]) Observable[Out] {
	return FuncObservable[Out](
		func(ctx context.Context, next func(Out) error) error {
			acc := init
			return switchMap(
				src,
				func(x In) Observable[Out] { return step(acc, x) },
				func(out Out) { acc = out },
			).Observe(ctx, next)
		})
}

// switchMap implements SwitchMap. 'apply' and 'onItem' are called from the
// observing goroutine.
func switchMap[A, B any](src Observable[A], apply func(A) Observable[B], onItem func(B)) Observable[B] {
	return FuncObservable[B](
		func(ctx context.Context, next func(B) error) error {
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			var wg sync.WaitGroup
			finish := func(err error) error {
				cancel()
				wg.Wait()
				return err
			}

			deliver := func(item B) error {
				if onItem != nil {
					onItem(item)
				}
				return next(item)
			}

			outerItems := make(chan A)
			outerAck := make(chan error, 1)
			outerDone := make(chan error, 1)
			innerEvents := make(chan switchEvent[B])

			wg.Add(1)
			go func() {
				defer wg.Done()
				outerDone <- src.Observe(
					ctx,
					func(a A) error {
						select {
						case outerItems <- a:
						case <-ctx.Done():
							return ctx.Err()
						}
						select {
						case err := <-outerAck:
							return err
						case <-ctx.Done():
							return ctx.Err()
						}
					})
			}()

			var (
				gen           int
				cancelInner   context.CancelFunc = func() {}
				innerActive   bool
				outerFinished bool
			)

			startInner := func(a A) error {
				cancelInner()
				gen++
				innerActive = false

				inner := apply(a)
				if IsSynchronous(inner) {
					return inner.Observe(ctx, deliver)
				}

				var innerCtx context.Context
				innerCtx, cancelInner = context.WithCancel(ctx)
				innerActive = true
				thisGen := gen
				wg.Add(1)
				go func() {
					defer wg.Done()
					ack := make(chan error, 1)
					err := inner.Observe(
						innerCtx,
						func(item B) error {
							select {
							case innerEvents <- switchEvent[B]{gen: thisGen, item: item, ack: ack}:
							case <-innerCtx.Done():
								return innerCtx.Err()
							}
							select {
							case err := <-ack:
								return err
							case <-innerCtx.Done():
								return innerCtx.Err()
							}
						})
					select {
					case innerEvents <- switchEvent[B]{gen: thisGen, done: true, err: err}:
					case <-ctx.Done():
					}
				}()
				return nil
			}

			for !outerFinished || innerActive {
				select {
				case a := <-outerItems:
					err := startInner(a)
					outerAck <- err
					if err != nil {
						return finish(err)
					}

				case err := <-outerDone:
					if err != nil {
						return finish(err)
					}
					outerFinished = true

				case ev := <-innerEvents:
					if ev.gen != gen {
						// Switched away from this inner observable, drop whatever
						// it had in flight.
						if !ev.done {
							ev.ack <- context.Canceled
						}
						continue
					}
					if ev.done {
						innerActive = false
						if ev.err != nil {
							return finish(ev.err)
						}
						continue
					}
					err := deliver(ev.item)
					ev.ack <- err
					if err != nil {
						return finish(err)
					}
				}
			}
			return finish(nil)
		})
}
