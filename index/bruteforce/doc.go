// Package bruteforce provides an exact nearest-neighbor index that answers
// queries by scanning all reference points. It is the default backend for the
// outlier scorer: no build cost beyond magnitude caching, fully deterministic
// results, and stable tie-breaking by row index.
package bruteforce
