package copier

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/pcp-cli/pcp/internal/fsys"
)

// rejectSelfCopies fails when any source identifies dest or one of dest's
// ancestors, which would copy a directory into itself. All violations are
// collected before returning; nothing short-circuits on the first hit.
//
// dest is made absolute first. Walking the ancestors of a relative path ends
// at a spurious empty component that would both produce a bogus stat error
// and stop the walk short of the real root.
func (c *Copier) rejectSelfCopies(sources []string, dest string) error {
	prefix := ""
	if !filepath.IsAbs(dest) {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		prefix = wd
		dest = filepath.Join(wd, dest)
	}

	// Sources are identified without following symlinks, because the link
	// itself is what gets copied. Ancestors are identified through whatever
	// they resolve to.
	ids := make([]fsys.Identity, len(sources))
	known := make([]bool, len(sources))
	var errs []error
	for i, source := range sources {
		id, err := fsys.IdentityOf(source, false)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ids[i], known[i] = id, true
	}

	for ancestor := dest; ; ancestor = filepath.Dir(ancestor) {
		ancestorID, err := fsys.IdentityOf(ancestor, true)
		if err != nil {
			errs = append(errs, err)
		} else {
			for i, source := range sources {
				if known[i] && ids[i] == ancestorID {
					errs = append(errs, &SelfCopyError{Source: source, Ancestor: displayPath(ancestor, prefix)})
				}
			}
		}
		if ancestor == filepath.Dir(ancestor) {
			break
		}
	}

	return errors.Join(errs...)
}

// displayPath strips the working-directory prefix the guard added, so error
// messages talk about the paths the user actually typed.
func displayPath(path, prefix string) string {
	if prefix == "" {
		return path
	}
	rel, err := filepath.Rel(prefix, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
