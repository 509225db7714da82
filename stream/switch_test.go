// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSwitchScan(t *testing.T) {
	sum := func(acc, x int) Observable[int] {
		return Just(acc + x)
	}
	src := SwitchScan(Of(1, 2, 3), 0, sum)

	// Each observation starts from the initial state.
	for i := 0; i < 2; i++ {
		xs, err := ToSlice(context.TODO(), src)
		assertNil(t, "SwitchScan", err)
		assertSlice(t, "SwitchScan", []int{1, 3, 6}, xs)
	}

	// Empty source emits nothing.
	xs, err := ToSlice(context.TODO(), SwitchScan(Empty[int](), 0, sum))
	assertNil(t, "SwitchScan of Empty", err)
	assertSlice(t, "SwitchScan of Empty", []int{}, xs)

	checkCancelled(t, "cancelled SwitchScan", SwitchScan(Range(0, 100), 0, sum))
}

func TestSwitchScanSwitchesAway(t *testing.T) {
	// Only the step for the last item gets to emit, the earlier ones are
	// switched away from before their items arrive. The state is thus never
	// updated before the last step.
	step := func(acc, x int) Observable[int] {
		if x < 3 {
			return Delay(Just(acc+x), time.Hour)
		}
		return Delay(Just(acc+x), time.Millisecond)
	}
	xs, err := ToSlice(context.TODO(), SwitchScan(Of(1, 2, 3), 0, step))
	assertNil(t, "SwitchScan", err)
	assertSlice(t, "SwitchScan", []int{3}, xs)
}

func TestSwitchMap(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. synchronous inner observables
	xs, err := ToSlice(ctx, SwitchMap(Range(0, 3), func(x int) Observable[int] {
		return Of(x, x*10)
	}))
	assertNil(t, "case 1", err)
	assertSlice(t, "case 1", []int{0, 0, 1, 10, 2, 20}, xs)

	// 2. asynchronous inner observable outliving the source
	xs, err = ToSlice(ctx, SwitchMap(Just(1), func(x int) Observable[int] {
		return Delay(Of(x, x+1), time.Millisecond)
	}))
	assertNil(t, "case 2", err)
	assertSlice(t, "case 2", []int{1, 2}, xs)

	// 3. cancelled context
	checkCancelled(t, "case 3", SwitchMap(Range(0, 3), func(x int) Observable[int] {
		return Delay(Just(x), time.Millisecond)
	}))
}

func TestSwitchMapCancelsPreviousInner(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	firstCancelled := make(chan struct{})
	first := FuncObservable[string](
		func(ctx context.Context, next func(string) error) error {
			<-ctx.Done()
			close(firstCancelled)
			return ctx.Err()
		})

	emit, complete, outer := fromCallback[int](1)
	src := SwitchMap(outer, func(x int) Observable[string] {
		if x == 1 {
			return first
		}
		return Just("second")
	})

	items, errs := ToChannels(ctx, src)

	emit(1)
	emit(2)
	require.Equal(t, "second", <-items)

	select {
	case <-firstCancelled:
	case <-ctx.Done():
		t.Fatal("first inner observable was not cancelled")
	}

	complete(nil)
	_, ok := <-items
	require.False(t, ok)
	assertNil(t, "SwitchMap", <-errs)
}

func TestSwitchMapErrors(t *testing.T) {
	boom := errors.New("boom")

	// 1. error from the source
	_, err := ToSlice(context.TODO(), SwitchMap(Error[int](boom), func(x int) Observable[int] {
		return Just(x)
	}))
	require.ErrorIs(t, err, boom)

	// 2. error from a synchronous inner observable
	_, err = ToSlice(context.TODO(), SwitchMap(Range(0, 3), func(x int) Observable[int] {
		return Error[int](boom)
	}))
	require.ErrorIs(t, err, boom)

	// 3. error from an asynchronous inner observable
	_, err = ToSlice(context.TODO(), SwitchMap(Just(1), func(x int) Observable[int] {
		return Delay(Error[int](boom), time.Millisecond)
	}))
	require.ErrorIs(t, err, boom)

	// 4. downstream error stops the stream
	seen := 0
	err = SwitchMap(Range(0, 10), func(x int) Observable[int] {
		return Delay(Just(x), time.Millisecond)
	}).Observe(context.TODO(), func(x int) error {
		seen++
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.LessOrEqual(t, seen, 1)
}
