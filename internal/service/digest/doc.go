// Package digest downloads release assets and computes their SHA-256 digests.
//
// Downloads are streamed in fixed-size chunks and capped at MaxAssetSize.
package digest
