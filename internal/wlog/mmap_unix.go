//go:build unix

package wlog

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapFile maps size bytes of f read-only into memory. The mapping is
// private: the kernel never writes our pages back, and the file may not
// be resized underneath us without invalidating the contract.
func mapFile(f *os.File, size int) ([]byte, error) {
	return unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_PRIVATE)
}

func unmapFile(data []byte) error {
	return unix.Munmap(data)
}
