package codegen

import (
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// GeneratedFileName is the registration test file written next to the
// step functions.
const GeneratedFileName = "boza_test.go"

// DetectPackage resolves the package name and full import path for the
// directory the registration file is generated into.
func DetectPackage(dir string) (pkgName string, pkgPath string, err error) {
	pkgName, err = detectPackageName(dir)
	if err != nil {
		return "", "", err
	}
	pkgPath, err = ImportPath(dir)
	if err != nil {
		return pkgName, "", err
	}
	return pkgName, pkgPath, nil
}

// detectPackageName reads the package clause from existing Go files,
// falling back to a name derived from the directory (or module) path.
func detectPackageName(dir string) (string, error) {
	fset := token.NewFileSet()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}
		if name == GeneratedFileName {
			continue
		}

		f, parseErr := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.PackageClauseOnly)
		if parseErr != nil {
			continue
		}
		if f.Name != nil && f.Name.Name != "" {
			return f.Name.Name, nil
		}
	}

	return packageNameFromDir(dir)
}

// packageNameFromDir derives a valid package name from the directory path,
// preferring the module path's last segment at the module root.
func packageNameFromDir(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	goModPath := filepath.Join(absDir, "go.mod")
	if data, readErr := os.ReadFile(goModPath); readErr == nil {
		modFile, parseErr := modfile.Parse(goModPath, data, nil)
		if parseErr == nil && modFile.Module != nil {
			if name := sanitizePackageName(filepath.Base(modFile.Module.Mod.Path)); name != "" {
				return name, nil
			}
		}
	}

	if name := sanitizePackageName(filepath.Base(absDir)); name != "" {
		return name, nil
	}
	return "", fmt.Errorf("cannot derive package name from directory %s", dir)
}

// sanitizePackageName turns a raw directory or module path segment into a
// valid Go package name.
func sanitizePackageName(raw string) string {
	if raw == "" || raw == "." || raw == "/" {
		return ""
	}

	var b strings.Builder
	for i, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r - 'A' + 'a')
		case r == '-' || r == '.':
			if i == 0 {
				continue
			}
			b.WriteRune('_')
		default:
		}
	}

	name := b.String()
	if name == "" {
		return ""
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	return name
}

// ImportPath walks up from dir looking for go.mod, then joins the module
// path with the relative directory.
func ImportPath(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	current := absDir
	for {
		goModPath := filepath.Join(current, "go.mod")
		if data, readErr := os.ReadFile(goModPath); readErr == nil {
			modFile, parseErr := modfile.Parse(goModPath, data, nil)
			if parseErr != nil {
				return "", fmt.Errorf("cannot parse go.mod: %w", parseErr)
			}

			rel, relErr := filepath.Rel(current, absDir)
			if relErr != nil {
				return "", relErr
			}
			if rel == "." {
				return modFile.Module.Mod.Path, nil
			}
			return modFile.Module.Mod.Path + "/" + filepath.ToSlash(rel), nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("go.mod not found in any parent of %s", dir)
		}
		current = parent
	}
}
