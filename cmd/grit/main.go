package main

import (
	"errors"
	"os"

	"github.com/pterm/pterm"

	"github.com/grit-cli/grit/app"
	"github.com/grit-cli/grit/internal/apperr"
)

func run(args []string) error {
	return app.Get().Run(args)
}

func main() {
	err := run(os.Args)
	if err != nil {
		pterm.Error.Println(err)

		var appErr *apperr.Error
		if errors.As(err, &appErr) && appErr.Usage != "" {
			pterm.Printfln("usage: grit %s", appErr.Usage)
		}

		os.Exit(1)
	}
}
