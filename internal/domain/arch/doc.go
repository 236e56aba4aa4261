// Package arch buckets Windows release assets by CPU architecture.
//
// Classify decides the bucket of a single file name; Select applies it to a
// whole asset list and keeps at most one asset per bucket.
package arch
