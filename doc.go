package schemac

// Package schemac compiles API contracts into TypeScript validation schemas:
//
// - GraphQL SDL plus operation documents, and OpenAPI 3.x documents, lower to
//   one shared intermediate representation (ir package)
// - Four validator libraries are supported as emission targets: zod, valibot,
//   arktype, effect
// - Named schemas are topologically sorted so every emitted declaration only
//   references schemas declared above it; cycles degrade to a warning
// - Query-idiom analysis (capability package) classifies filter, sort, and
//   pagination conventions of list endpoints
//
// Design policy:
// - Keep orchestration (Config, Generate) in the root package; lowering lives
//   under graphql/ and openapi/, emission under emit/, and the CLI under
//   cmd/schemac.
// - Recoverable spec problems are warnings on the result, never aborts; only
//   configuration errors and unreadable documents are fatal.
//
// Typical usage:
//
//  cfg, err := schemac.LoadConfig("schemac.yaml")
//  out, err := schemac.GenerateGraphQL(cfg.Sources[0], in)
//  os.WriteFile("schemas.ts", []byte(out.Emitted.Content), 0o644)
