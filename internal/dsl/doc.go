// Package dsl parses view declarations.
//
// A declaration body is a sequence of fragments, views and annotations:
//
//	@owned "// KeywordSearch runs a keyword query."
//	fragment all { Offset, Limit }
//	fragment keyword { Some(Query), WordsLimit }
//	view KeywordSearch { ..all, ..keyword }
//	view HybridSearch[T] {
//	    ..all,
//	    ..keyword,
//	    Some(Ratio) if validRatio(*Ratio),
//	    Circle(Shape),
//	}
//
// Parse produces the AST; Check validates it against a schema.Source.
package dsl
