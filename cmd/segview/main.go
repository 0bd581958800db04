package main

import (
	"log"
	"log/slog"
	"os"

	"segview.dev/segview/logging"
)

func main() {
	slog.SetDefault(slog.New(logging.NewTextHandler()))

	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
