package codegen

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestDetectPackage(t *testing.T) {
	t.Run("should read the package clause from existing go files", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "go.mod", "module example.com/demo\n\ngo 1.25\n")
		writeFile(t, dir, "steps.go", "package demo\n")

		name, path, err := DetectPackage(dir)
		require.NoError(t, err)
		require.Equal(t, "demo", name)
		require.Equal(t, "example.com/demo", path)
	})

	t.Run("should join the module path with nested directories", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "go.mod", "module example.com/demo\n\ngo 1.25\n")
		nested := filepath.Join(dir, "internal", "steps")
		require.NoError(t, os.MkdirAll(nested, 0o755))
		writeFile(t, nested, "steps.go", "package steps\n")

		name, path, err := DetectPackage(nested)
		require.NoError(t, err)
		require.Equal(t, "steps", name)
		require.Equal(t, "example.com/demo/internal/steps", path)
	})

	t.Run("should skip the generated file when reading package clauses", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "go.mod", "module example.com/demo\n\ngo 1.25\n")
		writeFile(t, dir, GeneratedFileName, "package stale\n")
		writeFile(t, dir, "steps.go", "package fresh\n")

		name, _, err := DetectPackage(dir)
		require.NoError(t, err)
		require.Equal(t, "fresh", name)
	})

	t.Run("should derive the name from the module path when no go files exist", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "go.mod", "module example.com/my-project\n\ngo 1.25\n")

		name, path, err := DetectPackage(dir)
		require.NoError(t, err)
		require.Equal(t, "my_project", name)
		require.Equal(t, "example.com/my-project", path)
	})

	t.Run("should fail without a go.mod in any parent", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "steps.go", "package steps\n")

		_, _, err := DetectPackage(dir)
		require.ErrorContains(t, err, "go.mod not found")
	})
}

func TestSanitizePackageName(t *testing.T) {
	cases := map[string]string{
		"demo":       "demo",
		"My-Project": "my_project",
		"go.kit":     "go_kit",
		"9lives":     "_9lives",
		"-leading":   "leading",
		".hidden":    "hidden",
		"":           "",
	}
	for raw, expected := range cases {
		require.Equal(t, expected, sanitizePackageName(raw), raw)
	}
}

func TestOutputGenerate(t *testing.T) {
	t.Run("should emit a syntactically valid registration test", func(t *testing.T) {
		output := &Output{
			ConfigFunctions: []*FunctionLocator{
				{FullPackageName: "example.com/demo/support", FunctionName: "Defaults"},
			},
			HookFunctions: []*FunctionLocator{
				{FullPackageName: "example.com/demo/support", FunctionName: "Tracing"},
			},
			Steps: []*StepLocator{
				{
					Kind:            "Given",
					Patterns:        []string{`^the user has (-?\d+) credits$`},
					Tags:            []string{"smoke"},
					FunctionLocator: &FunctionLocator{FullPackageName: "example.com/demo/steps", FunctionName: "UserHasCredits"},
				},
				{
					Kind:            "Then",
					Generic:         true,
					FunctionLocator: &FunctionLocator{FullPackageName: "example.com/demo/steps", FunctionName: "ListContains"},
				},
			},
			CurrentPackagePath: "example.com/demo",
			PackageName:        "demo",
		}

		builder := &strings.Builder{}
		require.NoError(t, output.Generate(builder))
		src := builder.String()

		_, err := parser.ParseFile(token.NewFileSet(), GeneratedFileName, src, 0)
		require.NoError(t, err, src)

		require.Contains(t, src, "package demo")
		require.Contains(t, src, "func TestBoza(t *testing.T)")
		require.Contains(t, src, "MergeConfigs")
		require.Contains(t, src, "WithConfig(config)")
		require.Contains(t, src, "WithHooks")
		require.Contains(t, src, `UserHasCredits`)
		require.Contains(t, src, `^the user has (-?\d+) credits$`)
		require.Contains(t, src, `"smoke"`)
		require.Contains(t, src, "Generic: true")
		require.Contains(t, src, "t.Fatal(err)")
	})

	t.Run("should call functions from the target package unqualified", func(t *testing.T) {
		output := &Output{
			Steps: []*StepLocator{
				{
					Kind:            "When",
					Patterns:        []string{`^it runs$`},
					FunctionLocator: &FunctionLocator{FullPackageName: "example.com/demo", FunctionName: "ItRuns"},
				},
			},
			CurrentPackagePath: "example.com/demo",
			PackageName:        "demo",
		}

		builder := &strings.Builder{}
		require.NoError(t, output.Generate(builder))
		src := builder.String()

		require.Contains(t, src, "Handler: ItRuns")
		require.NotContains(t, src, "demo.ItRuns")
	})

	t.Run("should default the package name to main", func(t *testing.T) {
		output := &Output{}

		builder := &strings.Builder{}
		require.NoError(t, output.Generate(builder))
		require.Contains(t, builder.String(), "package main")
	})
}
