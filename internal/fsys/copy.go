package fsys

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"

	"github.com/pcp-cli/pcp/internal/platform"
)

// CopyRegular copies src's bytes and permission bits to dst, overwriting dst
// if it already exists. The destination is opened with O_NOFOLLOW so a
// dangling or hostile symlink at dst cannot redirect the write. Returns the
// number of bytes written.
func CopyRegular(src, dst string) (int64, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, err
	}

	// A whole-file clone carries bytes and permission bits in one syscall.
	// It refuses an existing dst, so overwrites take the open-and-copy path.
	if result, ok, err := platform.Clone(src, dst, info.Size()); ok {
		if err != nil {
			return result.Bytes, fmt.Errorf("copy %s -> %s: %w", src, dst, err)
		}
		return result.Bytes, nil
	}

	srcFd, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer srcFd.Close()

	dstFd, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC|unix.O_NOFOLLOW, info.Mode().Perm())
	if err != nil {
		return 0, err
	}

	result, err := platform.Copy(srcFd, dstFd, info.Size())
	if err != nil {
		dstFd.Close()
		return result.Bytes, fmt.Errorf("copy %s -> %s: %w", src, dst, err)
	}

	// The mode passed to OpenFile is masked by the umask and ignored entirely
	// when dst already exists.
	if err := dstFd.Chmod(info.Mode().Perm()); err != nil {
		dstFd.Close()
		return result.Bytes, err
	}

	return result.Bytes, dstFd.Close()
}

// CreateSymlink creates dst as a symlink holding the literal text of target.
func CreateSymlink(target, dst string) error {
	return os.Symlink(target, dst)
}

// CreateFifo creates a named pipe at dst with the given permission bits.
func CreateFifo(dst string, mode os.FileMode) error {
	if err := unix.Mkfifo(dst, uint32(mode.Perm())); err != nil {
		return &os.PathError{Op: "mkfifo", Path: dst, Err: err}
	}
	// Mkfifo's mode is masked by the umask.
	return os.Chmod(dst, mode.Perm())
}

// CopyDeviceBytes copies the content readable through the device node at src
// into a regular file at dst carrying the given permission bits. It does not
// recreate the node's major/minor identity.
func CopyDeviceBytes(src, dst string, mode os.FileMode) (int64, error) {
	srcFd, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer srcFd.Close()

	dstFd, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC|unix.O_NOFOLLOW, mode.Perm())
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(dstFd, srcFd)
	if err != nil {
		dstFd.Close()
		return n, fmt.Errorf("copy %s -> %s: %w", src, dst, err)
	}

	if err := dstFd.Chmod(mode.Perm()); err != nil {
		dstFd.Close()
		return n, err
	}

	return n, dstFd.Close()
}

// CreateDirectory creates dst with the given permission bits, keeping the
// setuid, setgid, and sticky bits. It fails if dst already exists.
func CreateDirectory(dst string, mode os.FileMode) error {
	perm := mode & (os.ModePerm | os.ModeSetuid | os.ModeSetgid | os.ModeSticky)
	if err := os.Mkdir(dst, perm); err != nil {
		return err
	}
	// Mkdir's mode is masked by the umask.
	return os.Chmod(dst, perm)
}

// Dirent is one child of a listed directory. Err is set when the entry's
// metadata could not be read; the rest of the listing is unaffected.
type Dirent struct {
	Name string
	Type FileType
	Err  error
}

// ListChildren lists the children of dir. Individual entry failures surface
// on their Dirent; a listing-level failure is returned alongside whatever
// entries were read before it.
func ListChildren(dir string) ([]Dirent, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		err = fmt.Errorf("read %s: %w", dir, err)
	}

	dirents := make([]Dirent, 0, len(entries))
	for _, entry := range entries {
		info, infoErr := entry.Info()
		if infoErr != nil {
			dirents = append(dirents, Dirent{Name: entry.Name(), Err: infoErr})
			continue
		}
		dirents = append(dirents, Dirent{Name: entry.Name(), Type: TypeFromMode(info.Mode())})
	}
	return dirents, err
}
