//go:build !linux

package platform

import "os"

// Copy falls back to buffered read/write on platforms without a kernel-side
// copy syscall.
func Copy(src, dst *os.File, size int64) (Result, error) {
	preallocate(dst, size)
	return readWrite(src, dst)
}
