// Package fieldmodel classifies how each field of a view is extracted from
// the source and derives its owned, shared and exclusive representation
// types.
//
// Every shared and exclusive representation is a pointer. A field whose
// owned type is already a pointer is never wrapped again: all three
// representations use the owned type unchanged.
package fieldmodel
