// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package demo

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/joamaki/rxdemos/stream"
)

// Record is the labeled form of a combined snapshot.
type Record struct {
	N int
	C rune
	B bool
}

func (r Record) String() string {
	return fmt.Sprintf("{ n: %s, c: %s, b: %s }", formatValue(r.N), formatValue(r.C), formatValue(r.B))
}

// List is the positional form of a combined snapshot.
type List []any

func (l List) String() string {
	if len(l) == 0 {
		return "[]"
	}
	parts := make([]string, len(l))
	for i, x := range l {
		parts[i] = formatValue(x)
	}
	return "[ " + strings.Join(parts, ", ") + " ]"
}

// formatValue formats characters and strings quoted and everything else as is.
func formatValue(x any) string {
	switch x := x.(type) {
	case rune:
		return "'" + string(x) + "'"
	case string:
		return "'" + x + "'"
	default:
		return fmt.Sprint(x)
	}
}

// CombineLatest combines three sequences of numbers, characters and booleans
// and prints the snapshots, first as records and then as lists. The record
// subscription completes before the list subscription starts.
func CombineLatest(ctx context.Context, w io.Writer, log *zap.Logger) error {
	ns := stream.Of(1, 2, 3)
	cs := stream.Of('a', 'b', 'c')
	bs := stream.Of(true, true, false)

	records := stream.Map(
		stream.CombineLatest3(ns, cs, bs),
		func(t stream.Tuple3[int, rune, bool]) Record {
			return Record{N: t.V1, C: t.V2, B: t.V3}
		})
	if err := printEach(ctx, w, records); err != nil {
		return fmt.Errorf("printing records: %w", err)
	}
	log.Debug("Records done")

	lists := stream.Map(
		stream.CombineLatest(stream.ToAny(ns), stream.ToAny(cs), stream.ToAny(bs)),
		func(xs []any) List { return List(xs) })
	if err := printEach(ctx, w, lists); err != nil {
		return fmt.Errorf("printing lists: %w", err)
	}
	log.Debug("Lists done")
	return nil
}
