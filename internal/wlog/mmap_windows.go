//go:build windows

package wlog

import (
	"io"
	"os"
)

// mapFile reads the file into an ordinary buffer on Windows. The buffer
// satisfies the same contract as a mapping: stable for the lifetime of
// the Log and released by unmapFile.
func mapFile(f *os.File, size int) ([]byte, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, err
	}
	return data, nil
}

func unmapFile(data []byte) error {
	return nil
}
