// Package schema describes the source struct that views project from.
//
// Types are carried as canonical Go type expressions ("*string",
// "viewrt.Result[int]", "[]T") qualified by the import names of the file
// that declares the struct. The helpers in this package inspect those
// expressions with go/parser, so a Source can be built either by the
// analyze package or by hand in tests.
package schema
