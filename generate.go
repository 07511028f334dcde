package schemac

import (
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/schemac/schemac/emit"
	"github.com/schemac/schemac/graphql"
	"github.com/schemac/schemac/ir"
	"github.com/schemac/schemac/openapi"
)

// GraphQLInput is one GraphQL source, already loaded into memory by the
// caller: the schema plus its parsed (unvalidated) operation documents.
type GraphQLInput struct {
	Schema    *ast.Schema
	Documents []*ast.QueryDocument
}

// OpenAPIInput is one OpenAPI source, already loaded and dereference-ready.
type OpenAPIInput struct {
	Doc *openapi3.T
}

// Output is one source's complete generation result: the IR (for downstream
// generators that need names and categories) and the emitted module.
type Output struct {
	Source  string
	Result  ir.Result
	Emitted emit.Result
}

// Warnings merges parse- and emit-stage warnings in occurrence order.
func (o *Output) Warnings() []string {
	out := append([]string(nil), o.Result.Warnings...)
	return append(out, o.Emitted.Warnings...)
}

// GenerateGraphQL runs the parse and emit pipeline for one GraphQL source.
func GenerateGraphQL(src Source, in GraphQLInput) (*Output, error) {
	e, err := prepare(src)
	if err != nil {
		return nil, err
	}
	if in.Schema == nil {
		return nil, fmt.Errorf("source %s: no schema loaded", src.Name)
	}
	res := graphql.Parse(in.Schema, in.Documents, graphql.Options{Scalars: src.Scalars})
	return &Output{
		Source:  src.Name,
		Result:  res,
		Emitted: e.Emit(res.Schemas, emit.Options{FormContext: src.Forms}),
	}, nil
}

// GenerateOpenAPI runs the parse and emit pipeline for one OpenAPI source.
func GenerateOpenAPI(src Source, in OpenAPIInput) (*Output, error) {
	e, err := prepare(src)
	if err != nil {
		return nil, err
	}
	res, err := openapi.Parse(in.Doc, openapi.Options{
		Scalars: src.Scalars,
		Include: src.Include,
		Exclude: src.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", src.Name, err)
	}
	return &Output{
		Source:  src.Name,
		Result:  res,
		Emitted: e.Emit(res.Schemas, emit.Options{FormContext: src.Forms}),
	}, nil
}

// prepare resolves the emitter and re-checks scalar overrides so that a
// source built programmatically (not through LoadConfig) still fails fast on
// configuration errors.
func prepare(src Source) (emit.Emitter, error) {
	if err := src.validate(); err != nil {
		return nil, err
	}
	e, _ := emit.Lookup(src.Validator)
	return e, nil
}

// Job is one source plus its loaded input; exactly one input must be set,
// matching the source's kind.
type Job struct {
	Source  Source
	GraphQL *GraphQLInput
	OpenAPI *OpenAPIInput
}

// Outcome is one job's result. Err is a fatal, source-scoped error; warnings
// travel inside Output.
type Outcome struct {
	Name   string
	Output *Output
	Err    error
}

// Generate runs every job and collects per-source outcomes. Sources never
// share results or output files, so they run concurrently and one source's
// fatal error never blocks the others.
func Generate(jobs []Job) []Outcome {
	out := make([]Outcome, len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job Job) {
			defer wg.Done()
			out[i] = runJob(job)
		}(i, job)
	}
	wg.Wait()
	return out
}

func runJob(job Job) Outcome {
	o := Outcome{Name: job.Source.Name}
	switch job.Source.Kind {
	case SourceGraphQL:
		if job.GraphQL == nil {
			o.Err = fmt.Errorf("source %s: graphql input missing", job.Source.Name)
			return o
		}
		o.Output, o.Err = GenerateGraphQL(job.Source, *job.GraphQL)
	case SourceOpenAPI:
		if job.OpenAPI == nil {
			o.Err = fmt.Errorf("source %s: openapi input missing", job.Source.Name)
			return o
		}
		o.Output, o.Err = GenerateOpenAPI(job.Source, *job.OpenAPI)
	default:
		o.Err = fmt.Errorf("source %s: unknown kind %q", job.Source.Name, job.Source.Kind)
	}
	return o
}
