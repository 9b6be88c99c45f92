// Package match ranks value table keys by similarity to a value that has
// no entry, so the unmapped report can point at likely typos.
//
// Key functions:
//   - Levenshtein: edit distance over runes
//   - Similarity: normalized score in [0, 1]
//   - Suggest: top-N keys above a score threshold
package match
