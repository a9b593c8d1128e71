// Package outlier scores how atypical each vector in a query set is relative
// to a reference distribution, using the mean distance to its k nearest
// reference neighbors normalized into [0,1]: 1 means coincident with its
// neighborhood, 0 means maximally distant. A percentile threshold computed on
// a trusted reference distribution turns scores into binary outlier decisions.
package outlier
