// Package internal implements an in-memory spreadsheet engine: a sparse
// two-dimensional grid of cells, each holding nothing, literal text, or a
// formula referencing other cells. It tracks the cross-cell reference graph,
// rejects writes that would introduce a cycle, and memoizes computed values,
// invalidating the transitive closure of dependents on every accepted
// mutation.
package internal
