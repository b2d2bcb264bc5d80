package wlog

import "bytes"

// Sentinel separates an embedded header block from the request target
// within a record.
const Sentinel byte = 0x01

// SplitRecord separates a record into its request target and optional
// embedded header block.
//
// With embedded headers disabled, or when the record carries no sentinel
// byte, the whole record is the target and hasHeader is false — sentinel
// bytes are then ordinary target data.
//
// With embedded headers enabled and a sentinel present, the bytes before
// the first sentinel are the raw (still escaped) header block and the
// bytes after it are the target. Later sentinels remain part of the
// target. A record beginning with the sentinel yields an empty header
// block with hasHeader still true.
//
// Both return slices alias rec.
func SplitRecord(rec []byte, embeddedHeaders bool) (target, header []byte, hasHeader bool) {
	if !embeddedHeaders {
		return rec, nil, false
	}

	i := bytes.IndexByte(rec, Sentinel)
	if i < 0 {
		return rec, nil, false
	}

	return rec[i+1:], rec[:i], true
}
