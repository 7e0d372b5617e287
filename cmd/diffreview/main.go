package main

import (
	"os"

	"github.com/dshills/diffreview/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
