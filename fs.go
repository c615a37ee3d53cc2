package filefind

import (
	"io"
	"os"
	"os/user"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"
)

// Info describes a filesystem entry's metadata.
type Info struct {
	Mode  os.FileMode
	Size  int64
	UID   uint32
	GID   uint32
	Atime time.Time // last access
	Mtime time.Time // last modification
	Ctime time.Time // last inode change
}

// Creds identifies the calling process for the access directives.
type Creds struct {
	UID    int
	EUID   int
	GID    int
	EGID   int
	Groups []int
}

// FS is the filesystem capability the engine consumes: metadata lookup,
// directory listing, and the identity queries the directives need. The
// default implementation is OSFilesystem; tests and embedders may supply
// their own via WithFS.
type FS interface {
	// Stat returns metadata for path, following symlinks.
	Stat(path string) (Info, error)

	// Lstat returns metadata for path without following symlinks.
	Lstat(path string) (Info, error)

	// ReadDir lists the immediate entry names of dir, excluding the "."
	// and ".." pseudo-entries.
	ReadDir(dir string) ([]string, error)

	// OwnerName resolves a user id to a user name.
	OwnerName(uid uint32) (string, error)

	// GroupName resolves a group id to a group name.
	GroupName(gid uint32) (string, error)

	// IsTerminal reports whether path refers to a terminal device.
	IsTerminal(path string) (bool, error)

	// Sniff returns up to n leading bytes of the file at path.
	Sniff(path string, n int) ([]byte, error)

	// Creds returns the calling process's identity.
	Creds() Creds
}

type osFS struct{}

// OSFilesystem returns the FS backed by the local operating system.
func OSFilesystem() FS { return osFS{} }

func (osFS) Stat(path string) (Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}
	return infoFromOS(fi), nil
}

func (osFS) Lstat(path string) (Info, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return Info{}, err
	}
	return infoFromOS(fi), nil
}

func (osFS) ReadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name()
	}
	return names, nil
}

func (osFS) OwnerName(uid uint32) (string, error) {
	u, err := user.LookupId(strconv.FormatUint(uint64(uid), 10))
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

func (osFS) GroupName(gid uint32) (string, error) {
	g, err := user.LookupGroupId(strconv.FormatUint(uint64(gid), 10))
	if err != nil {
		return "", err
	}
	return g.Name, nil
}

func (osFS) IsTerminal(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	return isatty.IsTerminal(f.Fd()), nil
}

func (osFS) Sniff(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, n)
	m, err := io.ReadFull(f, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = nil
	}
	if err != nil {
		return nil, err
	}
	return buf[:m], nil
}

func (osFS) Creds() Creds {
	groups, _ := os.Getgroups()
	return Creds{
		UID:    os.Getuid(),
		EUID:   os.Geteuid(),
		GID:    os.Getgid(),
		EGID:   os.Getegid(),
		Groups: groups,
	}
}

func infoFromOS(fi os.FileInfo) Info {
	info := Info{
		Mode:  fi.Mode(),
		Size:  fi.Size(),
		Mtime: fi.ModTime(),
	}
	fillSys(&info, fi)
	return info
}
