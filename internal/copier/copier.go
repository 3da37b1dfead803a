// Package copier plans and executes parallel copies. The orchestrator picks
// single-file overwrite or fan-in mode per invocation, pre-flight guards
// reject self-copies and name collisions fatally, and the dispatcher/
// replicator pair walks directory trees with goroutine-per-child fan-out,
// OR-reducing per-item failures into one aggregate boolean.
package copier

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/pcp-cli/pcp/internal/filter"
	"github.com/pcp-cli/pcp/internal/fsys"
	"github.com/pcp-cli/pcp/internal/report"
	"github.com/pcp-cli/pcp/internal/stats"
)

// Options configures a Copier.
type Options struct {
	// Workers bounds concurrent copy I/O. Zero means min(NumCPU*2, 32).
	Workers int
	// Verify re-reads every copied regular file and compares BLAKE3
	// checksums against the source.
	Verify bool
	// Exclude skips matching sources during the walk.
	Exclude *filter.Chain
	// Stderr receives per-item error lines. Defaults to os.Stderr.
	Stderr io.Writer
	// Stats receives copy counters. Optional.
	Stats *stats.Collector
}

// Copier executes copy invocations.
type Copier struct {
	opts  Options
	sem   *semaphore.Weighted
	sink  *report.Sink
	stats *stats.Collector
}

// New creates a Copier.
func New(opts Options) *Copier {
	if opts.Workers <= 0 {
		opts.Workers = min(runtime.NumCPU()*2, 32)
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Stats == nil {
		opts.Stats = stats.NewCollector()
	}
	return &Copier{
		opts:  opts,
		sem:   semaphore.NewWeighted(int64(opts.Workers)),
		sink:  report.NewSink(opts.Stderr),
		stats: opts.Stats,
	}
}

// Copy is the engine entry point. args holds the source paths followed by
// the destination. The returned bool reports whether any per-item error
// occurred; those have already been printed. A non-nil error is a fatal
// pre-flight condition and nothing has been copied.
func (c *Copier) Copy(ctx context.Context, args []string) (bool, error) {
	switch len(args) {
	case 0, 1:
		return false, ErrTooFewArgs
	case 2:
		return c.copySingle(ctx, args[0], args[1])
	default:
		return c.copyInto(ctx, args[:len(args)-1], args[len(args)-1])
	}
}

// copySingle copies one source to dest. An existing directory destination
// falls through to fan-in mode; a destination that is the source itself is
// refused outright, since proceeding would truncate the data mid-copy.
func (c *Copier) copySingle(ctx context.Context, source, dest string) (bool, error) {
	if c.excluded(source) {
		c.stats.AddSkipped(1)
		return false, nil
	}

	srcID, err := fsys.IdentityOf(source, false)
	if err != nil {
		return false, err
	}

	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		return c.copyInto(ctx, []string{source}, dest)
	}

	if dstID, err := fsys.IdentityOf(dest, false); err == nil && dstID == srcID {
		return false, &OverwriteError{Source: source, Dest: dest}
	}

	typ, typErr := fsys.TypeOf(source)
	return c.copyFile(ctx, source, typ, typErr, dest), nil
}

// copyInto copies each source into the directory dest, fanning out over the
// sources in parallel after the pre-flight guards pass.
func (c *Copier) copyInto(ctx context.Context, sources []string, dest string) (bool, error) {
	info, err := os.Stat(dest)
	if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return false, &NotDirectoryError{Path: dest}
	}
	if err := c.rejectSelfCopies(sources, dest); err != nil {
		return false, err
	}
	names, err := fileNames(sources)
	if err != nil {
		return false, err
	}

	var wg sync.WaitGroup
	var failed atomic.Bool
	for i, source := range sources {
		if c.excluded(source) {
			c.stats.AddSkipped(1)
			continue
		}
		source := source
		dst := filepath.Join(dest, names[i])
		wg.Add(1)
		go func() {
			defer wg.Done()
			typ, typErr := fsys.TypeOf(source)
			if c.copyFile(ctx, source, typ, typErr, dst) {
				failed.Store(true)
			}
		}()
	}
	wg.Wait()
	return failed.Load(), nil
}

func (c *Copier) excluded(path string) bool {
	return c.opts.Exclude != nil && c.opts.Exclude.Excluded(path)
}
