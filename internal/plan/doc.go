// Package plan assembles resolved views into a Plan consumed by code
// generation.
//
// Assembly pipeline:
//  1. Parse and check the declaration body (dsl)
//  2. Splice fragments into views (expand)
//  3. Build a field model per view field (fieldmodel)
//  4. Compute required type parameters, the cross-view compatibility table
//     and one accessor per distinct field name
//  5. Reject generated names that would collide
package plan
