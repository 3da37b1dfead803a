package copier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pcp-cli/pcp/internal/fsys"
)

// ErrTooFewArgs is returned when the argument list names no destination.
var ErrTooFewArgs = errors.New("please provide at least two arguments (run 'pcp --help' for details)")

// SelfCopyError reports a source whose identity matches the destination or
// one of its ancestors, which would copy a directory into itself.
type SelfCopyError struct {
	Source   string
	Ancestor string
}

func (e *SelfCopyError) Error() string {
	return fmt.Sprintf("cannot copy directory '%s' into itself '%s'", e.Source, e.Ancestor)
}

// OverwriteError reports an attempt to overwrite a file with itself, which
// would truncate the data before reading it back.
type OverwriteError struct {
	Source string
	Dest   string
}

func (e *OverwriteError) Error() string {
	return fmt.Sprintf("cannot overwrite file '%s' with itself '%s'", e.Source, e.Dest)
}

// NotDirectoryError reports a fan-in destination that exists but is not a
// directory.
type NotDirectoryError struct {
	Path string
}

func (e *NotDirectoryError) Error() string {
	return fmt.Sprintf("%s is not a directory", e.Path)
}

// NameCollisionError reports sources sharing a final path component, which
// would be written to the same destination inside a fan-in copy.
type NameCollisionError struct {
	Name    string
	Sources []string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("%s: paths have the same file name and thus would be copied to the same destination",
		strings.Join(e.Sources, ", "))
}

// NoFileNameError reports a source path with no final component, such as the
// filesystem root.
type NoFileNameError struct {
	Path string
}

func (e *NoFileNameError) Error() string {
	return fmt.Sprintf("%s: path does not end with a file name", e.Path)
}

// UnsupportedTypeError reports a source whose file type cannot be copied.
type UnsupportedTypeError struct {
	Path string
	Type fsys.FileType
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s: %ss cannot be copied", e.Path, e.Type)
}
