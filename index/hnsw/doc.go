// Package hnsw adapts the coder/hnsw graph to the index.Index contract for
// large reference sets where brute-force scanning is too slow. Results are
// approximate; candidates are reranked with the exact metric distance.
package hnsw
