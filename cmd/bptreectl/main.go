package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Run with `go run ./cmd/bptreectl`

func main() {
	app := &cli.App{
		Name:      "bptreectl",
		HelpName:  "bptreectl",
		Usage:     "a set of utilities to drive and inspect an in-memory B+tree",
		Copyright: "(c) 2024 Fantom Foundation",
		Flags:     []cli.Flag{},
		Commands: []*cli.Command{
			&setCommand,
			&mapCommand,
			&seqCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
