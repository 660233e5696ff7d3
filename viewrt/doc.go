// Package viewrt is the runtime support imported by code that view-generator
// emits.
//
// It provides:
//   - Result: a fallible value container matched by Ok(..) and Err(..) patterns
//   - Lease: a borrow handle held by generated Ref and Mut projections
//
// Leases are tracked in a process-wide registry keyed by the borrowed pointer.
// Any number of shared leases may coexist on one pointer; an exclusive lease
// excludes every other lease. A conflicting acquisition through Share or
// Exclusive panics with *ConflictError.
package viewrt
