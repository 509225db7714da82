// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package main

import (
	"github.com/joamaki/rxdemos/internal/cli"
	"github.com/joamaki/rxdemos/internal/demo"
)

func main() {
	cli.Main(cli.NewCommand(
		"lastvalue",
		"Resolve the last value of an empty sequence and report the failure",
		demo.LastValue))
}
