// Package sparql defines the structured-query surface the compiler consumes:
// query forms, triple patterns, and the sealed algebra node family produced
// by the external parser.
//
// This package does not parse query text. Queries arrive already parsed,
// either constructed in Go by the parser front end or decoded from the JSON
// plan-file format used by the CLI and the conformance harness.
//
// SEALED ALGEBRA:
//
// Node is a sealed interface using the marker method pattern. Only types in
// this package implement it, so the plan transformers can type-switch
// exhaustively over the algebra and treat an unknown node as a hard error.
package sparql
