package main

import (
	"fmt"
	"os"

	"github.com/covtools/xml2lcov/cmd/xml2lcov/app"
)

func main() {
	if err := app.NewXML2LCOVCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
