// Package runner is the caller-facing surface: a builder that collects step
// definitions, hooks, value parsers and configuration, finds feature files
// and executes them through the engine.
package runner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	tagexpressions "github.com/cucumber/tag-expressions/go/v6"

	"github.com/ecetin/boza/pkg/engine"
	"github.com/ecetin/boza/pkg/feature"
)

const (
	FeatureExtension = ".feature"
)

type (
	Runner struct {
		exec               Executor
		config             *engine.Config
		featureDirectories []string
		err                error // first registration error, surfaced at Run
	}
)

// New creates a Runner driving the given Executor. A nil exec gets a fresh
// engine with default configuration.
func New(exec Executor) *Runner {
	if exec == nil {
		exec = engine.New(nil)
	}
	return &Runner{exec: exec}
}

// WithConfig merges the given configs (last wins) into the runner's
// configuration.
func (r *Runner) WithConfig(configs ...*engine.Config) *Runner {
	r.config = engine.MergeConfigs(configs...)
	return r
}

// WithFeatureDirectories sets the directories searched for .feature files.
// Defaults to the working directory.
func (r *Runner) WithFeatureDirectories(directories ...string) *Runner {
	r.featureDirectories = directories
	return r
}

// Register registers one step definition tuple for the given kind.
func (r *Runner) Register(kind feature.StepKind, def engine.Definition) *Runner {
	if err := r.exec.AddStep(kind, def); err != nil && r.err == nil {
		r.err = err
	}
	return r
}

// Given registers a Given step with a single pattern.
func (r *Runner) Given(pattern string, fn any) *Runner {
	return r.Register(feature.Given, engine.Definition{Patterns: []string{pattern}, Handler: fn})
}

// When registers a When step with a single pattern.
func (r *Runner) When(pattern string, fn any) *Runner {
	return r.Register(feature.When, engine.Definition{Patterns: []string{pattern}, Handler: fn})
}

// Then registers a Then step with a single pattern.
func (r *Runner) Then(pattern string, fn any) *Runner {
	return r.Register(feature.Then, engine.Definition{Patterns: []string{pattern}, Handler: fn})
}

// WithHooks registers lifecycle hooks.
func (r *Runner) WithHooks(hooks ...*engine.Hooks) *Runner {
	r.exec.AddHook(hooks...)
	return r
}

// WithParser registers a value parser for the type of specimen.
func (r *Runner) WithParser(specimen any, fn engine.ParserFunc) *Runner {
	r.exec.AddParser(specimen, fn)
	return r
}

// Run executes every scenario of every found feature file.
func (r *Runner) Run() error {
	return r.RunWithTags("")
}

// RunWithTags executes the scenarios whose tags satisfy the given cucumber
// tag expression (e.g. "@smoke and not @slow"). An empty expression runs
// everything.
func (r *Runner) RunWithTags(expression string) error {
	if r.err != nil {
		return r.err
	}

	var evaluator tagexpressions.Evaluatable
	if strings.TrimSpace(expression) != "" {
		parsed, err := tagexpressions.Parse(expression)
		if err != nil {
			return fmt.Errorf("invalid tag expression %q: %w", expression, err)
		}
		evaluator = parsed
	}

	directories := r.featureDirectories
	if len(directories) == 0 {
		directories = []string{"."}
	}
	featureFiles, err := searchFeatureFiles(directories)
	if err != nil {
		return err
	}

	config := r.config
	if config == nil {
		config = engine.MergeConfigs()
	}
	logger := config.Logger
	if logger == nil {
		logger = engine.NopLogger()
	}

	var first error
	for _, file := range featureFiles {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("could not read file %s, error=%w", file, err)
		}

		feat, err := r.exec.GenerateFeature(file, string(data))
		if err != nil {
			return err
		}

		for _, action := range feat.Scenarios {
			if evaluator != nil && !evaluator.Evaluate(prefixTags(action.Tags)) {
				continue
			}
			if err := action.Invoke(); err != nil {
				logger.Error("scenario failed", "scenario", action.Name, "source", file, "error", err)
				if config.FailFast {
					return err
				}
				if first == nil {
					first = err
				}
				continue
			}
			logger.Debug("scenario passed", "scenario", action.Name, "source", file)
		}
	}
	return first
}

// searchFeatureFiles walks the directories collecting every .feature file.
func searchFeatureFiles(directories []string) ([]string, error) {
	featureFiles := make([]string, 0)
	for _, directory := range directories {
		err := filepath.Walk(directory, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && strings.HasSuffix(info.Name(), FeatureExtension) {
				featureFiles = append(featureFiles, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return featureFiles, nil
}

// prefixTags converts bare tag names to the @-prefixed form tag
// expressions are written in.
func prefixTags(tags []string) []string {
	prefixed := make([]string, len(tags))
	for i, t := range tags {
		prefixed[i] = "@" + t
	}
	return prefixed
}
