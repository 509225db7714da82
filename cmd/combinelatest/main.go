// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package main

import (
	"github.com/joamaki/rxdemos/internal/cli"
	"github.com/joamaki/rxdemos/internal/demo"
)

func main() {
	cli.Main(cli.NewCommand(
		"combinelatest",
		"Combine numbers, characters and booleans into records and lists",
		demo.CombineLatest))
}
