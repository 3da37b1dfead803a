//go:build darwin

package platform

import (
	"os"

	"golang.org/x/sys/unix"
)

// Clone attempts a whole-file copy-on-write clone of src at dst, which also
// carries src's permission bits over. The bool reports whether the clone
// handled the copy; a false return means the caller should fall back to the
// open-and-copy path. clonefile refuses to replace an existing destination,
// so overwrites always fall back.
func Clone(src, dst string, size int64) (Result, bool, error) {
	err := unix.Clonefile(src, dst, 0)
	if err == nil {
		return Result{Bytes: size, Method: Clonefile}, true, nil
	}
	if isFallbackCloneErr(err) {
		return Result{}, false, nil
	}
	return Result{Method: Clonefile}, true, &os.PathError{Op: "clonefile", Path: dst, Err: err}
}

func isFallbackCloneErr(err error) bool {
	switch err {
	case unix.ENOTSUP, unix.EXDEV, unix.EEXIST:
		return true
	}
	return false
}
