package filefind

import (
	"os"
	"path/filepath"
	"slices"
)

// Find walks the configured directories and returns every path that
// satisfies all active categories. The result is also retained for Files.
//
// Directories are processed in FIFO order starting from the configured
// roots; within a directory, entries follow the lister's order. A directory
// reachable more than once (duplicate roots, or recursion rejoining a
// visited path) is walked exactly once. The dedup is by cleaned path
// string, so a symlink cycle that keeps producing novel paths can recurse
// without bound.
//
// Any unlistable directory or failed metadata lookup aborts the walk with a
// DirectoryUnreadableError: no partial results are returned and the
// previous Files result is preserved.
func (s *FilterSpec) Find() ([]string, error) {
	queue := slices.Clone(s.dirs)
	visited := make(map[string]bool)
	var matched []string

	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]

		key := filepath.Clean(dir)
		if visited[key] {
			continue
		}
		visited[key] = true

		names, err := s.fs.ReadDir(dir)
		if err != nil {
			return nil, &DirectoryUnreadableError{Path: dir, Err: err}
		}
		s.log.WithField("dir", dir).Debug("walking directory")

		for _, name := range names {
			if name == "." || name == ".." {
				continue
			}
			child := filepath.Join(dir, name)

			ok, err := s.matches(child)
			if err != nil {
				return nil, err
			}
			if ok {
				matched = append(matched, child)
			}

			if !s.recurse {
				continue
			}

			// Recursion is independent of match status: a directory
			// that fails the filters is still descended into.
			info, err := s.fs.Lstat(child)
			if err != nil {
				return nil, &DirectoryUnreadableError{Path: child, Err: err}
			}
			if info.Mode&os.ModeSymlink != 0 {
				// Follow the link; a dangling target is simply not a
				// directory.
				if target, err := s.fs.Stat(child); err == nil {
					info = target
				}
			}
			if info.Mode.IsDir() {
				queue = append(queue, child)
			}
		}
	}

	s.log.WithField("matches", len(matched)).Debug("walk complete")
	s.files = matched
	return slices.Clone(matched), nil
}
