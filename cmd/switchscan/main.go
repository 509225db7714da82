// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package main

import (
	"github.com/joamaki/rxdemos/internal/cli"
	"github.com/joamaki/rxdemos/internal/demo"
)

func main() {
	cli.Main(cli.NewCommand(
		"switchscan",
		"Print the running sums of 1, 2 and 3 computed with a switch-scan",
		demo.SwitchScan))
}
