// Package vptree provides a vantage-point tree nearest-neighbor index. The
// tree is built once with deterministic vantage selection (no randomness), so
// repeated queries with identical inputs return identical results. Pruning
// requires a metric that satisfies the triangle inequality; cosine distance
// does not, so it is indexed in angular chord space and reported back as
// cosine distance.
package vptree
