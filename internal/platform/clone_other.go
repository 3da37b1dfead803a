//go:build !darwin

package platform

// Clone reports that whole-file cloning is unavailable, sending callers to
// the open-and-copy path.
func Clone(src, dst string, size int64) (Result, bool, error) {
	return Result{}, false, nil
}
