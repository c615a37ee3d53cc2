package filefind

import (
	"io/fs"
	"time"
)

// fakeEntry is one path in a fakeFS.
type fakeEntry struct {
	info Info
	link *Info // Lstat result when it differs from Stat (symlinks)
	data []byte
	tty  bool
}

// fakeFS is an in-memory FS for deterministic tests.
type fakeFS struct {
	entries map[string]fakeEntry
	dirs    map[string][]string
	users   map[uint32]string
	groups  map[uint32]string
	creds   Creds

	readDirCalls map[string]int
	failDirs     map[string]error
}

func newFakeFS() *fakeFS {
	return &fakeFS{
		entries:      make(map[string]fakeEntry),
		dirs:         make(map[string][]string),
		users:        make(map[uint32]string),
		groups:       make(map[uint32]string),
		creds:        Creds{UID: 1000, EUID: 1000, GID: 1000, EGID: 1000},
		readDirCalls: make(map[string]int),
		failDirs:     make(map[string]error),
	}
}

func (f *fakeFS) Stat(path string) (Info, error) {
	entry, ok := f.entries[path]
	if !ok {
		return Info{}, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return entry.info, nil
}

func (f *fakeFS) Lstat(path string) (Info, error) {
	entry, ok := f.entries[path]
	if !ok {
		return Info{}, &fs.PathError{Op: "lstat", Path: path, Err: fs.ErrNotExist}
	}
	if entry.link != nil {
		return *entry.link, nil
	}
	return entry.info, nil
}

func (f *fakeFS) ReadDir(dir string) ([]string, error) {
	f.readDirCalls[dir]++
	if err, ok := f.failDirs[dir]; ok {
		return nil, err
	}
	names, ok := f.dirs[dir]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: dir, Err: fs.ErrNotExist}
	}
	return names, nil
}

func (f *fakeFS) OwnerName(uid uint32) (string, error) {
	name, ok := f.users[uid]
	if !ok {
		return "", &fs.PathError{Op: "lookup", Err: fs.ErrNotExist}
	}
	return name, nil
}

func (f *fakeFS) GroupName(gid uint32) (string, error) {
	name, ok := f.groups[gid]
	if !ok {
		return "", &fs.PathError{Op: "lookup", Err: fs.ErrNotExist}
	}
	return name, nil
}

func (f *fakeFS) IsTerminal(path string) (bool, error) {
	entry, ok := f.entries[path]
	if !ok {
		return false, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return entry.tty, nil
}

func (f *fakeFS) Sniff(path string, n int) ([]byte, error) {
	entry, ok := f.entries[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if len(entry.data) > n {
		return entry.data[:n], nil
	}
	return entry.data, nil
}

func (f *fakeFS) Creds() Creds { return f.creds }

// addFile registers a regular file with the given mode and size.
func (f *fakeFS) addFile(path string, mode fs.FileMode, size int64) {
	f.entries[path] = fakeEntry{info: Info{
		Mode:  mode,
		Size:  size,
		UID:   1000,
		GID:   1000,
		Atime: time.Now().Add(-time.Hour),
		Mtime: time.Now().Add(-time.Hour),
		Ctime: time.Now().Add(-time.Hour),
	}}
}

// addDir registers a directory and its entry names.
func (f *fakeFS) addDir(path string, names ...string) {
	f.entries[path] = fakeEntry{info: Info{
		Mode:  fs.ModeDir | 0o755,
		UID:   1000,
		GID:   1000,
		Atime: time.Now().Add(-time.Hour),
		Mtime: time.Now().Add(-time.Hour),
		Ctime: time.Now().Add(-time.Hour),
	}}
	f.dirs[path] = names
}
