// Package main is the pdftext command: the extraction pipeline without the
// HTTP server, for scripts and quick checks.
package main

import (
	"log"
	"os"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
