// Package fsys wraps the type, identity, and creation primitives the copy
// engine needs behind small fallible functions. Type queries never follow
// symlinks: the link itself is what gets copied.
package fsys

import (
	"os"

	"golang.org/x/sys/unix"
)

// FileType identifies the kind of filesystem entry.
type FileType int

const (
	Unknown FileType = iota
	Regular
	Directory
	Symlink
	Fifo
	Socket
	CharDevice
	BlockDevice
)

var typeNames = [...]string{
	Unknown:     "unknown",
	Regular:     "regular file",
	Directory:   "directory",
	Symlink:     "symlink",
	Fifo:        "fifo",
	Socket:      "socket",
	CharDevice:  "character device",
	BlockDevice: "block device",
}

func (t FileType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// TypeFromMode maps a file mode to a FileType.
func TypeFromMode(mode os.FileMode) FileType {
	switch {
	case mode.IsRegular():
		return Regular
	case mode.IsDir():
		return Directory
	case mode&os.ModeSymlink != 0:
		return Symlink
	case mode&os.ModeNamedPipe != 0:
		return Fifo
	case mode&os.ModeSocket != 0:
		return Socket
	case mode&os.ModeCharDevice != 0:
		return CharDevice
	case mode&os.ModeDevice != 0:
		return BlockDevice
	default:
		return Unknown
	}
}

// TypeOf returns the type of the entry at path without following symlinks.
func TypeOf(path string) (FileType, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Unknown, err
	}
	return TypeFromMode(info.Mode()), nil
}

// Identity uniquely identifies a filesystem object across the host. The
// device number disambiguates inode numbers reused between filesystems.
type Identity struct {
	Dev uint64
	Ino uint64
}

// IdentityOf returns the identity of the entry at path. With follow set the
// query resolves symlinks; without it the link itself is identified.
func IdentityOf(path string, follow bool) (Identity, error) {
	var st unix.Stat_t
	var err error
	if follow {
		err = unix.Stat(path, &st)
	} else {
		err = unix.Lstat(path, &st)
	}
	if err != nil {
		return Identity{}, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	return Identity{Dev: uint64(st.Dev), Ino: uint64(st.Ino)}, nil //nolint:unconvert // Dev/Ino widths vary by platform
}
