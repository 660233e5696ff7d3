// Package match provides name normalization and Levenshtein distance
// for "did you mean" suggestions on misspelled fields and fragments.
//
// Key functions:
//   - NormalizeIdent: folds identifiers for fuzzy comparison
//   - Distance, Similarity: rune-wise edit distance and its normalized score
//   - Suggest: ranks the closest candidates for an unknown name
package match
