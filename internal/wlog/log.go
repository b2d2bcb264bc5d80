package wlog

import (
	"errors"
	"fmt"
	"os"
)

// Terminator separates records in a workload log.
const Terminator byte = 0x00

// ErrEmptyLog is returned when the workload log file has zero length.
var ErrEmptyLog = errors.New("workload log is empty")

// ErrNoValidRecords is returned when a full cycle through the log yields
// only empty records.
var ErrNoValidRecords = errors.New("workload log contains no valid records")

// Log is a read-only view of a memory-mapped workload log file.
//
// The mapping is established once by OpenLog and stays valid and immutable
// until Close. Record extraction returns sub-slices of the mapping; callers
// must not retain them past Close and must never write through them.
type Log struct {
	data []byte
}

// OpenLog maps the file at path read-only.
//
// Returns ErrEmptyLog (wrapped) if the file has zero length, or the
// underlying I/O error if the file cannot be opened or mapped.
func OpenLog(path string) (*Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open workload log: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat workload log: %w", err)
	}
	if st.Size() == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyLog)
	}

	data, err := mapFile(f, int(st.Size()))
	if err != nil {
		return nil, fmt.Errorf("map workload log %s: %w", path, err)
	}

	return &Log{data: data}, nil
}

// Size returns the length of the mapped log in bytes.
func (l *Log) Size() int { return len(l.data) }

// NextRecord returns the record starting at cursor, the cursor for the
// record after it, and whether the read wrapped around to the start of
// the log.
//
// A record runs from the cursor to the next terminator byte (exclusive),
// or to the end of the log if no terminator remains. The returned cursor
// sits past the terminator. If cursor is already at or past the end, the
// read restarts from the beginning and wrapped is true.
//
// The returned slice aliases the mapping and may be empty.
func (l *Log) NextRecord(cursor int) (rec []byte, next int, wrapped bool) {
	if cursor >= len(l.data) {
		cursor = 0
		wrapped = true
	}

	end := cursor
	for end < len(l.data) && l.data[end] != Terminator {
		end++
	}

	rec = l.data[cursor:end]
	next = end
	if next < len(l.data) {
		next++ // step past the terminator
	}
	return rec, next, wrapped
}

// Close releases the mapping. The Log and any record slices obtained from
// it must not be used afterwards. Close is idempotent.
func (l *Log) Close() error {
	if l.data == nil {
		return nil
	}
	data := l.data
	l.data = nil
	return unmapFile(data)
}
