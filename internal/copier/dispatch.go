package copier

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/pcp-cli/pcp/internal/fsys"
)

// copyFile performs the copy action for one source. Any error is printed at
// the point of failure; the return value only says that one occurred, so
// parallel subtrees can OR their outcomes without buffering errors for the
// end of a long run.
func (c *Copier) copyFile(ctx context.Context, source string, typ fsys.FileType, typErr error, dest string) bool {
	failed, err := c.copyEntry(ctx, source, typ, typErr, dest)
	if err != nil {
		c.sink.Error(err)
		c.stats.AddFailed(1)
		return true
	}
	return failed
}

func (c *Copier) copyEntry(ctx context.Context, source string, typ fsys.FileType, typErr error, dest string) (bool, error) {
	if typErr != nil {
		return false, typErr
	}

	switch typ {
	case fsys.Regular:
		return false, c.copyRegular(ctx, source, dest)

	case fsys.Directory:
		return c.copyDirectory(ctx, source, dest)

	case fsys.Symlink:
		target, err := os.Readlink(source)
		if err != nil {
			return false, err
		}
		if err := fsys.CreateSymlink(target, dest); err != nil {
			return false, err
		}
		c.stats.AddSymlinksCreated(1)
		return false, nil

	case fsys.Fifo:
		info, err := os.Lstat(source)
		if err != nil {
			return false, err
		}
		if err := fsys.CreateFifo(dest, info.Mode()); err != nil {
			return false, err
		}
		c.stats.AddFifosCreated(1)
		return false, nil

	case fsys.Socket:
		return false, &UnsupportedTypeError{Path: source, Type: typ}

	case fsys.CharDevice, fsys.BlockDevice:
		return false, c.copyDevice(ctx, source, dest)

	default:
		return false, fmt.Errorf("%s: unknown file type", source)
	}
}

// copyRegular byte-copies one regular file under a worker token so the
// degree of I/O parallelism stays bounded by the worker count, not by the
// number of outstanding goroutines.
func (c *Copier) copyRegular(ctx context.Context, source, dest string) error {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	n, err := fsys.CopyRegular(source, dest)
	c.sem.Release(1)
	if err != nil {
		return err
	}

	c.stats.AddFilesCopied(1)
	c.stats.AddBytesCopied(n)

	if c.opts.Verify {
		return c.verifyCopy(source, dest)
	}
	return nil
}

func (c *Copier) copyDevice(ctx context.Context, source, dest string) error {
	info, err := os.Lstat(source)
	if err != nil {
		return err
	}
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	n, err := fsys.CopyDeviceBytes(source, dest, info.Mode())
	c.sem.Release(1)
	if err != nil {
		return err
	}
	c.stats.AddDevicesCopied(1)
	c.stats.AddBytesCopied(n)
	return nil
}

// copyDirectory creates dest with source's permission bits and fans the
// dispatcher out over source's children, one goroutine per child. The
// returned bool ORs every child's outcome with the listing's; the returned
// error means dest itself could not be created and nothing under it was
// attempted. Children run independently: no ordering, and no child's failure
// stops a sibling.
func (c *Copier) copyDirectory(ctx context.Context, source, dest string) (bool, error) {
	info, err := os.Lstat(source)
	if err != nil {
		return false, err
	}
	if err := fsys.CreateDirectory(dest, info.Mode()); err != nil {
		return false, err
	}
	c.stats.AddDirsCreated(1)

	children, listErr := fsys.ListChildren(source)
	var failed atomic.Bool
	if listErr != nil {
		c.sink.Error(listErr)
		c.stats.AddFailed(1)
		failed.Store(true)
	}

	var wg sync.WaitGroup
	for _, child := range children {
		srcPath := filepath.Join(source, child.Name)
		if c.excluded(srcPath) {
			c.stats.AddSkipped(1)
			continue
		}
		dstPath := filepath.Join(dest, child.Name)
		childType, childErr := child.Type, child.Err

		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.copyFile(ctx, srcPath, childType, childErr, dstPath) {
				failed.Store(true)
			}
		}()
	}
	wg.Wait()

	return failed.Load(), nil
}
