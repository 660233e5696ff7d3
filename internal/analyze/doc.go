// Package analyze loads the Go package declaring a source struct and
// describes it as a schema.Source.
//
// It uses golang.org/x/tools/go/packages with AST and go/types. Field
// types are kept as written in the declaring file; named types of the
// package are recorded with the package interfaces they implement, which
// is what variant patterns infer their payload type from.
package analyze
