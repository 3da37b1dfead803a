// Package platform selects the fastest copy syscall the host kernel offers,
// falling back to plain buffered read/write where a strategy is unsupported.
package platform

import (
	"io"
	"os"
	"sync"
)

// Method identifies which syscall strategy performed a copy.
type Method int

const (
	ReadWrite     Method = iota
	CopyFileRange        // Linux copy_file_range(2)
	Sendfile             // Linux sendfile(2)
	Clonefile            // Darwin clonefile(2)
)

func (m Method) String() string {
	switch m {
	case ReadWrite:
		return "read_write"
	case CopyFileRange:
		return "copy_file_range"
	case Sendfile:
		return "sendfile"
	case Clonefile:
		return "clonefile"
	default:
		return "unknown"
	}
}

// Result reports the outcome of a copy.
type Result struct {
	Bytes  int64
	Method Method
}

const bufferSize = 1 << 20 // 1 MiB

var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, bufferSize)
		return &b
	},
}

// readWrite copies src to dst until EOF using a pooled buffer.
func readWrite(src, dst *os.File) (Result, error) {
	bufp := bufPool.Get().(*[]byte)
	defer bufPool.Put(bufp)

	var written int64
	buf := *bufp
	for {
		n, err := src.Read(buf)
		if n > 0 {
			w, werr := dst.Write(buf[:n])
			written += int64(w)
			if werr != nil {
				return Result{Bytes: written, Method: ReadWrite}, werr
			}
		}
		if err == io.EOF {
			return Result{Bytes: written, Method: ReadWrite}, nil
		}
		if err != nil {
			return Result{Bytes: written, Method: ReadWrite}, err
		}
	}
}
