// Package match ranks identifiers by similarity for "did you mean" hints.
//
// Key functions:
//   - NormalizeIdent: folds case and separators away
//   - Levenshtein: computes edit distance between strings
//   - Suggest: picks the closest candidates to a misspelled name
package match
