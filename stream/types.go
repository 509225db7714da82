// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream

// Tuple2 is a pair of values, e.g. a snapshot produced by CombineLatest2.
type Tuple2[V1, V2 any] struct {
	V1 V1
	V2 V2
}

// Tuple3 is a triple of values, e.g. a snapshot produced by CombineLatest3.
type Tuple3[V1, V2, V3 any] struct {
	V1 V1
	V2 V2
	V3 V3
}
