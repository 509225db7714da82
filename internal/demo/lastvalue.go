// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package demo

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/joamaki/rxdemos/stream"
)

// LastValue tries to resolve an empty sequence into its last value. The
// resolution fails with stream.ErrEmpty, which is reported to 'w' rather than
// returned.
func LastValue(ctx context.Context, w io.Writer, log *zap.Logger) error {
	return printLastValue(ctx, w, log, stream.Empty[string]())
}

func printLastValue[T any](ctx context.Context, w io.Writer, log *zap.Logger, src stream.Observable[T]) error {
	var res stream.Result[T]
	select {
	case res = <-stream.LastValueFrom(ctx, src):
	case <-ctx.Done():
		return ctx.Err()
	}

	log.Debug("Resolved last value",
		zap.Stringer("result", res.Id()),
		zap.Bool("success", res.IsSuccess()))

	value, err := res.Get()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		_, err = fmt.Fprintln(w, describeError(err))
		return err
	}
	_, err = fmt.Fprintln(w, value)
	return err
}

func describeError(err error) string {
	if errors.Is(err, stream.ErrEmpty) {
		return "EmptyError: " + err.Error()
	}
	return "Error: " + err.Error()
}
