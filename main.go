package main

import (
	"os"

	"github.com/cellar-works/cellar-ctl/cmd"
	"github.com/cellar-works/cellar-ctl/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
