package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ecetin/boza/internal/app"
	"github.com/ecetin/boza/internal/discovery"
)

func main() {
	err := app.Start(context.Background(), os.Args[1:], discovery.NewGoSourceFileParser())
	if err != nil {
		slog.Error("boza generation failed", "error", err)
		os.Exit(1)
	}
}
