// Package vector defines the numeric building blocks shared by the outlier
// scorer and its index backends. It includes:
//   - Matrix: an ordered set of fixed-dimension float32 embeddings
//   - Metric: supported distance metrics (cosine, euclidean)
//   - Point: a vector with cached magnitude for fast cosine distance
//   - Embedding encoding (BLOB) for SQLite storage
package vector
