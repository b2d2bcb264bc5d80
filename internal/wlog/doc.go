// Package wlog reads captured request workloads from a flat log file and
// replays them as a deterministic stream of request targets.
//
// A workload log is a concatenation of NUL-terminated records:
//
//	RECORD \0 RECORD \0 ... RECORD \0
//
// Each record is an opaque byte string naming one request target. When
// embedded-header mode is enabled, a record may carry a per-request header
// block ahead of the target, separated by a 0x01 sentinel byte:
//
//	HEADERS \x01 TARGET
//
// Header blocks use the same backslash-escape grammar as the --add-header
// command line option, so one decoder serves both.
//
// The file is memory-mapped read-only once at open and stays mapped for the
// lifetime of the Generator, so producing the next entry never performs I/O.
package wlog
