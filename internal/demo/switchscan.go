// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package demo

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/joamaki/rxdemos/stream"
)

// SwitchScan prints the running sum of 1, 2 and 3. Each step of the sum is a
// one-shot observable that replaces the step started for the previous number.
func SwitchScan(ctx context.Context, w io.Writer, log *zap.Logger) error {
	sums := stream.SwitchScan(
		stream.Of(1, 2, 3),
		0,
		func(acc, x int) stream.Observable[int] {
			log.Debug("Starting step", zap.Int("acc", acc), zap.Int("x", x))
			return stream.Just(acc + x)
		})
	return printEach(ctx, w, sums)
}
