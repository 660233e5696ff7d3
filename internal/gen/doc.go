// Package gen renders an assembled plan into Go source.
//
// For every view it emits the owned struct, the Ref and Mut borrow
// structs, their Release methods, the owned AsRef/AsMut projections and
// the IntoV/AsVRef/AsVMut conversions on the source. Once per source it
// emits the tagged union with its kind enum, constructors and unified
// field accessors.
//
// The file skeleton is a text/template; bodies are built as lines and
// the result is formatted with golang.org/x/tools/imports. Output depends
// only on the plan, so identical input yields identical bytes.
package gen
