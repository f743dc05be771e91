package codegen

import (
	"io"

	"github.com/dave/jennifer/jen"
)

const (
	enginePackage  = "github.com/ecetin/boza/pkg/engine"
	runnerPackage  = "github.com/ecetin/boza/pkg/runner"
	featurePackage = "github.com/ecetin/boza/pkg/feature"
)

type (
	FunctionLocator struct {
		FullPackageName string
		FunctionName    string
	}

	// StepLocator is one discovered step function plus the annotations on
	// it. Kind is the keyword name ("Given", "When" or "Then"). Generic
	// marks a function declared with type parameters; it is registered
	// without a handler so resolution can reject it.
	StepLocator struct {
		Kind     string
		Patterns []string
		Tags     []string
		Generic  bool
		*FunctionLocator
	}

	Output struct {
		ConfigFunctions    []*FunctionLocator // functions returning *engine.Config
		HookFunctions      []*FunctionLocator // functions returning *engine.Hooks
		Steps              []*StepLocator
		CurrentPackagePath string // full import path of the package the test file lands in
		PackageName        string // short package name; defaults to "main"
	}
)

// isSamePackage reports whether the function lives in the package the
// generated test file is written into, and so is called unqualified.
func (o *Output) isSamePackage(fullPkg string) bool {
	return o.CurrentPackagePath != "" && fullPkg == o.CurrentPackagePath
}

func (o *Output) qualOrLocal(fullPkg, funcName string) *jen.Statement {
	if o.isSamePackage(fullPkg) {
		return jen.Id(funcName)
	}
	return jen.Qual(fullPkg, funcName)
}

func stringSlice(values []string) jen.Code {
	literals := make([]jen.Code, len(values))
	for i, v := range values {
		literals[i] = jen.Lit(v)
	}
	return jen.Index().String().Values(literals...)
}

// definitionLiteral builds the engine.Definition composite literal for one
// discovered step.
func (o *Output) definitionLiteral(step *StepLocator) jen.Code {
	fields := jen.Dict{
		jen.Id("Name"): jen.Lit(step.FunctionName),
	}
	if len(step.Patterns) > 0 {
		fields[jen.Id("Patterns")] = stringSlice(step.Patterns)
	}
	if len(step.Tags) > 0 {
		fields[jen.Id("TagScope")] = stringSlice(step.Tags)
	}
	if step.Generic {
		fields[jen.Id("Generic")] = jen.True()
	} else {
		fields[jen.Id("Handler")] = o.qualOrLocal(step.FullPackageName, step.FunctionName)
	}
	return jen.Qual(enginePackage, "Definition").Values(fields)
}

// Generate writes the registration test file wiring every discovered
// config, hook and step function into a Runner.
func (o *Output) Generate(writer io.Writer) error {
	pkgName := o.PackageName
	if pkgName == "" {
		pkgName = "main"
	}
	testFile := jen.NewFile(pkgName)

	var statements []jen.Code

	if len(o.ConfigFunctions) > 0 {
		configCalls := make([]jen.Code, 0, len(o.ConfigFunctions))
		for _, cf := range o.ConfigFunctions {
			configCalls = append(configCalls, o.qualOrLocal(cf.FullPackageName, cf.FunctionName).Call())
		}
		statements = append(statements,
			jen.Id("config").Op(":=").Qual(enginePackage, "MergeConfigs").Call(configCalls...),
		)
	}

	runnerChain := jen.Id("err").Op(":=").Qual(runnerPackage, "New").Call(jen.Nil()).Id(".").Line()

	if len(o.ConfigFunctions) > 0 {
		runnerChain.Id("WithConfig").Call(jen.Id("config")).Id(".").Line()
	}

	if len(o.HookFunctions) > 0 {
		hookCalls := make([]jen.Code, 0, len(o.HookFunctions))
		for _, hf := range o.HookFunctions {
			hookCalls = append(hookCalls, o.qualOrLocal(hf.FullPackageName, hf.FunctionName).Call())
		}
		runnerChain.Id("WithHooks").Call(hookCalls...).Id(".").Line()
	}

	for _, step := range o.Steps {
		runnerChain.Id("Register").Call(
			jen.Qual(featurePackage, step.Kind),
			o.definitionLiteral(step),
		).Id(".").Line()
	}

	runnerChain.Id("Run").Call()
	statements = append(statements, runnerChain)
	statements = append(statements,
		jen.If(jen.Id("err").Op("!=").Nil()).Block(
			jen.Id("t").Dot("Fatal").Call(jen.Id("err")),
		),
	)

	testFile.Func().Id("TestBoza").Params(
		jen.Id("t").Op("*").Qual("testing", "T"),
	).Block(statements...)

	_, err := writer.Write([]byte(testFile.GoString()))
	return err
}
