//go:build linux

package platform

import (
	"os"

	"golang.org/x/sys/unix"
)

// Copy moves size bytes from src to dst, trying copy_file_range first,
// then sendfile, then buffered read/write. A strategy is abandoned only
// before it has written anything, so the fallbacks never double-write.
func Copy(src, dst *os.File, size int64) (Result, error) {
	preallocate(dst, size)

	result, err := copyFileRange(src, dst, size)
	if err == nil {
		return drain(result, src, dst)
	}
	if result.Bytes > 0 || !isFallbackErr(err) {
		return result, err
	}

	result, err = sendfile(src, dst, size)
	if err == nil {
		return drain(result, src, dst)
	}
	if result.Bytes > 0 || !isFallbackErr(err) {
		return result, err
	}

	return readWrite(src, dst)
}

// drain copies whatever lies past the stat-reported size. Virtual files
// under procfs and sysfs report a zero size, and a file that grows between
// stat and copy would otherwise be truncated at its old length.
func drain(result Result, src, dst *os.File) (Result, error) {
	extra, err := readWrite(src, dst)
	if extra.Bytes > 0 && result.Bytes == 0 {
		result.Method = ReadWrite
	}
	result.Bytes += extra.Bytes
	return result, err
}

func copyFileRange(src, dst *os.File, size int64) (Result, error) {
	var written int64
	for written < size {
		n, err := unix.CopyFileRange(int(src.Fd()), nil, int(dst.Fd()), nil, int(size-written), 0)
		if err != nil {
			return Result{Bytes: written, Method: CopyFileRange}, err
		}
		if n == 0 {
			break
		}
		written += int64(n)
	}
	return Result{Bytes: written, Method: CopyFileRange}, nil
}

func sendfile(src, dst *os.File, size int64) (Result, error) {
	var written int64
	for written < size {
		n, err := unix.Sendfile(int(dst.Fd()), int(src.Fd()), nil, int(size-written))
		if err != nil {
			return Result{Bytes: written, Method: Sendfile}, err
		}
		if n == 0 {
			break
		}
		written += int64(n)
	}
	return Result{Bytes: written, Method: Sendfile}, nil
}

// isFallbackErr reports whether err should trigger the next copy strategy.
func isFallbackErr(err error) bool {
	switch err {
	case unix.ENOSYS, unix.EXDEV, unix.EINVAL, unix.ENOTSUP:
		return true
	}
	if e, ok := err.(*os.PathError); ok {
		return isFallbackErr(e.Err)
	}
	return false
}
