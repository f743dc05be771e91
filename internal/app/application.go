package app

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ecetin/boza/internal/codegen"
)

const (
	Separator = ","
)

// Start discovers annotated step functions in the requested directories and
// writes a registration test file into each of them.
func Start(ctx context.Context, args []string, discoverer Discoverer) error {
	sources := make([]string, 0)

	flags := flag.NewFlagSet("boza", flag.ContinueOnError)
	codeFlag := flags.String("code", "", "directories to search for step functions separated by comma")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if len(strings.TrimSpace(*codeFlag)) == 0 {
		directory, err := os.Getwd()
		if err != nil {
			return err
		}
		sources = append(sources, directory)
	} else {
		sources = append(sources, strings.Split(*codeFlag, Separator)...)
	}

	for _, source := range sources {
		output, err := discoverer.Discover(ctx, source)
		if err != nil {
			slog.Error("discovery failed", "directory", source, "error", err)
			return err
		}

		pkgName, pkgPath, err := codegen.DetectPackage(source)
		if err != nil {
			return err
		}
		output.PackageName = pkgName
		output.CurrentPackagePath = pkgPath

		target := filepath.Join(source, codegen.GeneratedFileName)
		file, err := os.Create(target)
		if err != nil {
			return err
		}
		if err := output.Generate(file); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return err
		}
		slog.Info("generated registration file", "path", target, "steps", len(output.Steps))
	}

	return nil
}
