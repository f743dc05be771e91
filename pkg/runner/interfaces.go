//go:generate mockgen -source=interfaces.go -destination=interfaces_mock.go -package=runner
package runner

import (
	"github.com/ecetin/boza/pkg/engine"
	"github.com/ecetin/boza/pkg/feature"
)

type (
	// Executor is the engine surface the runner drives: registration of
	// steps, hooks and value parsers, and scenario generation per feature
	// file.
	Executor interface {
		AddStep(kind feature.StepKind, def engine.Definition) error
		AddHook(hooks ...*engine.Hooks)
		AddParser(specimen any, fn engine.ParserFunc)
		GenerateFeature(source, text string) (*engine.Feature, error)
	}
)
