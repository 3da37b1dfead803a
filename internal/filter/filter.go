// Package filter skips sources matching user-supplied glob patterns.
package filter

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Chain holds an ordered list of exclude patterns.
type Chain struct {
	patterns []string
}

// NewChain creates an empty chain.
func NewChain() *Chain {
	return &Chain{}
}

// Add appends an exclude pattern, validating its syntax.
func (c *Chain) Add(pattern string) error {
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid pattern %q", pattern)
	}
	c.patterns = append(c.patterns, pattern)
	return nil
}

// Empty reports whether the chain has no patterns.
func (c *Chain) Empty() bool {
	return len(c.patterns) == 0
}

// Excluded reports whether path matches any pattern. Patterns are tested
// against both the full path and its final component, so "*.log" excludes
// log files at any depth while "build/**" excludes a subtree.
func (c *Chain) Excluded(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range c.patterns {
		if ok, _ := doublestar.Match(pattern, filepath.ToSlash(path)); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
