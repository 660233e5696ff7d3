// Package diagnostic provides structured errors, warnings, and notes
// produced while compiling a views declaration.
//
// Key capabilities:
//   - Span-anchored diagnostics with stable codes
//   - "did you mean" suggestions
//   - file:line:col rendering with a source excerpt
package diagnostic
