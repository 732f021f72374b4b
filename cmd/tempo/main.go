package main

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/tempo-sh/tempo/app"
)

func run(args []string) error {
	return app.Get().Run(args)
}

func main() {
	if err := run(os.Args); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
