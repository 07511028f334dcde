package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	schemac "github.com/schemac/schemac"
	"github.com/schemac/schemac/emit"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "generate":
		generateCmd(os.Args[2:])
	case "libraries":
		for _, lib := range emit.Libraries() {
			fmt.Println(lib)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "schemac CLI\n\nUsage:\n  schemac generate [-c schemac.yaml] [-o dir]\n  schemac libraries\n\nNotes:\n  - Each configured source generates one TypeScript module.\n  - Warnings go to stderr; generation still completes for the affected source.")
}

func generateCmd(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var configPath string
	var outDir string
	fs.StringVar(&configPath, "c", "schemac.yaml", "configuration file (yaml or json)")
	fs.StringVar(&outDir, "o", ".", "output directory for sources without an explicit output path")
	_ = fs.Parse(args)

	cfg, err := schemac.LoadConfig(configPath)
	if err != nil {
		fatalf("%v", err)
	}

	failed := false
	outputs := map[string]string{}
	var jobs []schemac.Job
	for _, src := range cfg.Sources {
		outputs[src.Name] = outputPath(src, outDir)
		job, err := loadJob(src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "schemac: %v\n", err)
			failed = true
			continue
		}
		jobs = append(jobs, job)
	}

	for _, oc := range schemac.Generate(jobs) {
		if oc.Err != nil {
			fmt.Fprintf(os.Stderr, "schemac: %v\n", oc.Err)
			failed = true
			continue
		}
		for _, w := range oc.Output.Warnings() {
			fmt.Fprintf(os.Stderr, "schemac: %s: warning: %s\n", oc.Name, w)
		}
		out := outputs[oc.Name]
		if dir := filepath.Dir(out); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				fatalf("creating output dir: %v", err)
			}
		}
		if err := os.WriteFile(out, []byte(oc.Output.Emitted.Content), 0o644); err != nil {
			fatalf("writing %s: %v", out, err)
		}
	}
	if failed {
		os.Exit(1)
	}
}

func outputPath(src schemac.Source, outDir string) string {
	if src.Output != "" {
		return src.Output
	}
	return filepath.Join(outDir, src.Name+".ts")
}

// loadJob reads one source's spec files from disk. Load failures are
// source-scoped: the caller reports them and moves on to the next source.
func loadJob(src schemac.Source) (schemac.Job, error) {
	job := schemac.Job{Source: src}
	switch src.Kind {
	case schemac.SourceGraphQL:
		in, err := loadGraphQL(src)
		if err != nil {
			return job, fmt.Errorf("source %s: %w", src.Name, err)
		}
		job.GraphQL = in
	case schemac.SourceOpenAPI:
		doc, err := openapi3.NewLoader().LoadFromFile(src.Spec)
		if err != nil {
			return job, fmt.Errorf("source %s: %w", src.Name, err)
		}
		job.OpenAPI = &schemac.OpenAPIInput{Doc: doc}
	}
	return job, nil
}

func loadGraphQL(src schemac.Source) (*schemac.GraphQLInput, error) {
	if src.Schema == "" {
		return nil, fmt.Errorf("graphql source needs a schema path")
	}
	sdl, err := os.ReadFile(src.Schema)
	if err != nil {
		return nil, err
	}
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: src.Schema, Input: string(sdl)})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Schema, err)
	}

	var paths []string
	for _, pattern := range src.Documents {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("documents glob %q: %w", pattern, err)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	paths = dedupe(paths)

	docs := make([]*ast.QueryDocument, 0, len(paths))
	for _, path := range paths {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		// Parsed without validation so schema drift surfaces as warnings, not
		// load failures.
		doc, err := parser.ParseQuery(&ast.Source{Name: path, Input: string(b)})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		docs = append(docs, doc)
	}
	return &schemac.GraphQLInput{Schema: schema, Documents: docs}, nil
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}

// dedupe removes adjacent duplicates from a sorted slice; overlapping globs
// may match the same file twice.
func dedupe(paths []string) []string {
	out := paths[:0]
	for i, p := range paths {
		if i == 0 || p != paths[i-1] {
			out = append(out, p)
		}
	}
	return out
}
