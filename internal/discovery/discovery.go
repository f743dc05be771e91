package discovery

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/ecetin/boza/internal/codegen"
)

const (
	givenAnnotation = "@given"
	whenAnnotation  = "@when"
	thenAnnotation  = "@then"
	tagsAnnotation  = "@tags"
)

// builtInTypes maps {placeholder} names in step annotations to their
// regex patterns.
var builtInTypes = map[string]string{
	"int":    `(-?\d+)`,
	"float":  `(-?\d*\.?\d+)`,
	"word":   `(\w+)`,
	"string": `"([^"]*)"`, // captures content without the quotes
	"":       `(.*)`,
	"any":    `(.*)`,
}

type GoSourceFileParser struct {
}

func NewGoSourceFileParser() *GoSourceFileParser {
	return &GoSourceFileParser{}
}

// Discover parses every Go file under parentDirectory (recursively) and
// collects annotated step functions plus config and hook providers.
func (g *GoSourceFileParser) Discover(ctx context.Context, parentDirectory string) (*codegen.Output, error) {
	directories := getAllSubDirectories(parentDirectory)
	directories = append(directories, parentDirectory)

	output := &codegen.Output{
		ConfigFunctions: make([]*codegen.FunctionLocator, 0),
		HookFunctions:   make([]*codegen.FunctionLocator, 0),
		Steps:           make([]*codegen.StepLocator, 0),
	}

	allPackages := make(map[string]*ast.Package)
	for _, dir := range directories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		packagesInTheDirectory, err := parser.ParseDir(token.NewFileSet(), dir, nil, parser.ParseComments)
		if err != nil {
			return nil, err
		}
		mergePackages(allPackages, packagesInTheDirectory)
	}

	for _, packageData := range allPackages {
		for filePath, node := range packageData.Files {
			for _, dec := range node.Decls {
				decl, ok := dec.(*ast.FuncDecl)
				if !ok {
					continue
				}

				importPathOfFuncDecl, err := codegen.ImportPath(filepath.Dir(filePath))
				if err != nil {
					return nil, err
				}
				locator := &codegen.FunctionLocator{
					FullPackageName: importPathOfFuncDecl,
					FunctionName:    decl.Name.Name,
				}

				annotations := readAnnotations(decl)
				switch {
				case annotations.kind != "":
					step, stepErr := buildStepLocator(decl, annotations, locator)
					if stepErr != nil {
						return nil, fmt.Errorf("error in function %s: %w", decl.Name.Name, stepErr)
					}
					output.Steps = append(output.Steps, step)
				case returnsType(decl, "Config"):
					output.ConfigFunctions = append(output.ConfigFunctions, locator)
				case returnsType(decl, "Hooks"):
					output.HookFunctions = append(output.HookFunctions, locator)
				}
			}
		}
	}

	return output, nil
}

// annotations holds everything read off a function's doc comment block.
type annotations struct {
	kind     string   // "Given", "When" or "Then"
	patterns []string // raw backtick patterns, possibly empty
	tags     []string
}

func readAnnotations(decl *ast.FuncDecl) annotations {
	var a annotations
	if decl.Doc == nil {
		return a
	}

	for _, comment := range decl.Doc.List {
		text := strings.TrimSpace(strings.TrimPrefix(comment.Text, "//"))
		switch {
		case hasAnnotation(text, givenAnnotation):
			a.kind = "Given"
			a.patterns = appendPattern(a.patterns, text, givenAnnotation)
		case hasAnnotation(text, whenAnnotation):
			a.kind = "When"
			a.patterns = appendPattern(a.patterns, text, whenAnnotation)
		case hasAnnotation(text, thenAnnotation):
			a.kind = "Then"
			a.patterns = appendPattern(a.patterns, text, thenAnnotation)
		case hasAnnotation(text, tagsAnnotation):
			a.tags = append(a.tags, strings.Fields(text[len(tagsAnnotation):])...)
		}
	}

	return a
}

// hasAnnotation matches the keyword exactly: "@given" and "@given `...`"
// qualify, "@givenness" does not.
func hasAnnotation(text, keyword string) bool {
	if !strings.HasPrefix(text, keyword) {
		return false
	}
	rest := text[len(keyword):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

// appendPattern extracts the backtick-quoted pattern after the keyword, if
// any. A bare annotation contributes no pattern; the function name is used
// as the step text instead.
func appendPattern(patterns []string, text, keyword string) []string {
	rest := strings.TrimSpace(text[len(keyword):])
	if len(rest) >= 2 && strings.HasPrefix(rest, "`") && strings.HasSuffix(rest, "`") {
		patterns = append(patterns, rest[1:len(rest)-1])
	}
	return patterns
}

func buildStepLocator(decl *ast.FuncDecl, a annotations, locator *codegen.FunctionLocator) (*codegen.StepLocator, error) {
	transformed := make([]string, 0, len(a.patterns))
	for _, pattern := range a.patterns {
		t, err := transformStepPattern(pattern)
		if err != nil {
			return nil, err
		}
		transformed = append(transformed, t)
	}

	return &codegen.StepLocator{
		Kind:            a.kind,
		Patterns:        transformed,
		Tags:            a.tags,
		Generic:         decl.Type.TypeParams != nil,
		FunctionLocator: locator,
	}, nil
}

// transformStepPattern replaces {typename} placeholders with regex patterns.
func transformStepPattern(pattern string) (string, error) {
	result := pattern
	start := 0

	for {
		openBrace := strings.Index(result[start:], "{")
		if openBrace == -1 {
			break
		}
		openBrace += start

		closeBrace := strings.Index(result[openBrace:], "}")
		if closeBrace == -1 {
			break
		}
		closeBrace += openBrace

		typeName := result[openBrace+1 : closeBrace]
		regexPattern, ok := builtInTypes[strings.ToLower(typeName)]
		if !ok {
			return "", fmt.Errorf("unknown parameter type {%s} in step pattern", typeName)
		}

		result = result[:openBrace] + regexPattern + result[closeBrace+1:]
		start = openBrace + len(regexPattern)
	}

	return result, nil
}

// returnsType reports whether the function returns exactly one value whose
// type name ends with suffix, e.g. *engine.Config or *engine.Hooks.
func returnsType(fnDecl *ast.FuncDecl, suffix string) bool {
	if fnDecl.Type.Results == nil {
		return false
	}
	returnedTypes := fnDecl.Type.Results.List
	if len(returnedTypes) != 1 {
		return false
	}
	return strings.HasSuffix(analyzeExpr(returnedTypes[0].Type), suffix)
}

func analyzeExpr(expr ast.Expr) string {
	switch expr := expr.(type) {
	case *ast.Ident:
		return expr.Name
	case *ast.SelectorExpr:
		return fmt.Sprintf("%s.%s", analyzeExpr(expr.X), expr.Sel.Name)
	case *ast.StarExpr:
		return "*" + analyzeExpr(expr.X)
	case *ast.ParenExpr:
		return "(" + analyzeExpr(expr.X) + ")"
	default:
		return "unknown"
	}
}

func getAllSubDirectories(dirPath string) []string {
	var subdirectories []string

	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() && path != dirPath {
			subdirectories = append(subdirectories, path)
		}
		return nil
	})
	if err != nil {
		fmt.Println(err)
	}

	return subdirectories
}

func mergePackages(m1 map[string]*ast.Package, m2 map[string]*ast.Package) {
	for k, v := range m2 {
		m1[k] = v
	}
}
