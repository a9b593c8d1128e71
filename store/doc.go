// Package store persists named embedding sets in SQLite using the pure-Go
// modernc.org/sqlite driver. Embeddings are stored one row per vector as
// little-endian float32 BLOBs, so reference and query sets can be ingested
// once and scored many times. It also registers vec_cosine and vec_l2 scalar
// functions for ad-hoc distance queries in SQL.
package store
