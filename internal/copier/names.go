package copier

import (
	"errors"
	"path/filepath"
)

// fileNames returns each source's final path component, which doubles as its
// name inside the fan-in destination. It fails when a source has no final
// component or two sources share one, listing every colliding group.
func fileNames(sources []string) ([]string, error) {
	names := make([]string, len(sources))
	for i, source := range sources {
		name, ok := fileName(source)
		if !ok {
			return nil, &NoFileNameError{Path: source}
		}
		names[i] = name
	}

	groups := make(map[string][]string, len(sources))
	var order []string
	for i, source := range sources {
		if _, seen := groups[names[i]]; !seen {
			order = append(order, names[i])
		}
		groups[names[i]] = append(groups[names[i]], source)
	}

	var errs []error
	for _, name := range order {
		if group := groups[name]; len(group) > 1 {
			errs = append(errs, &NameCollisionError{Name: name, Sources: group})
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return names, nil
}

// fileName extracts the final path component. Root, ".", and paths cleaning
// to ".." have none.
func fileName(path string) (string, bool) {
	base := filepath.Base(filepath.Clean(path))
	switch base {
	case string(filepath.Separator), ".", "..":
		return "", false
	}
	return base, true
}
