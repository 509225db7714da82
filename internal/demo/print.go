// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

// Package demo implements the reactive demo pipelines. Each pipeline writes one
// line per emitted item to the given writer.
package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/joamaki/rxdemos/stream"
)

// printEach observes 'src' and writes each item on its own line.
func printEach[T any](ctx context.Context, w io.Writer, src stream.Observable[T]) error {
	return src.Observe(
		ctx,
		func(item T) error {
			_, err := fmt.Fprintln(w, item)
			return err
		})
}
