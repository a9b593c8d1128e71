// Package index defines the nearest-neighbor index abstraction used by the
// outlier scorer. Implementations in this module include an exact brute-force
// baseline, a VP-tree that prunes search, and an approximate HNSW backend.
package index
