package filefind

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// sniffLen is how many leading bytes the ascii/binary heuristic examines.
const sniffLen = 512

// statCache performs at most one Stat and one Lstat per candidate path, no
// matter how many categories need metadata.
type statCache struct {
	fs   FS
	path string

	info     Info
	have     bool
	linkInfo Info
	haveLink bool
}

func (c *statCache) get() (Info, error) {
	if !c.have {
		info, err := c.fs.Stat(c.path)
		if err != nil {
			return Info{}, &DirectoryUnreadableError{Path: c.path, Err: err}
		}
		c.info = info
		c.have = true
	}
	return c.info, nil
}

func (c *statCache) getLink() (Info, error) {
	if !c.haveLink {
		info, err := c.fs.Lstat(c.path)
		if err != nil {
			return Info{}, &DirectoryUnreadableError{Path: c.path, Err: err}
		}
		c.linkInfo = info
		c.haveLink = true
	}
	return c.linkInfo, nil
}

// matches evaluates every active category against path and ANDs the
// results. Metadata is looked up lazily: a configuration touching only
// names never stats. A failed metadata lookup aborts the traversal.
func (s *FilterSpec) matches(path string) (bool, error) {
	base := filepath.Base(path)

	if s.like != nil && !matchAny(s.like, base) {
		return false, nil
	}
	if s.unlike != nil && matchAny(s.unlike, base) {
		return false, nil
	}
	if s.ext != nil && !matchSuffix(s.ext, path) {
		return false, nil
	}
	if s.subs != nil && !matchPredicates(s.subs, path) {
		return false, nil
	}

	st := &statCache{fs: s.fs, path: path}

	if s.size != nil {
		info, err := st.get()
		if err != nil {
			return false, err
		}
		for _, expr := range s.size {
			ok, err := s.sizes.Compare(expr, info.Size)
			if err != nil {
				return false, fmt.Errorf("size expression %q: %w", expr, err)
			}
			if !ok {
				return false, nil
			}
		}
	}

	for _, category := range []struct {
		name  string
		exprs []string
		stamp func(Info) time.Time
	}{
		{"changed", s.changed, func(i Info) time.Time { return i.Ctime }},
		{"modified", s.modified, func(i Info) time.Time { return i.Mtime }},
		{"accessed", s.accessed, func(i Info) time.Time { return i.Atime }},
	} {
		if category.exprs == nil {
			continue
		}
		info, err := st.get()
		if err != nil {
			return false, err
		}
		for _, expr := range category.exprs {
			ok, err := s.times.Compare(expr, category.stamp(info))
			if err != nil {
				return false, fmt.Errorf("%s expression %q: %w", category.name, expr, err)
			}
			if !ok {
				return false, nil
			}
		}
	}

	for _, d := range s.is {
		ok, err := s.testDirective(d, path, st)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	for _, d := range s.isnt {
		ok, err := s.testDirective(d, path, st)
		if err != nil {
			return false, err
		}
		if ok {
			return false, nil
		}
	}

	if s.owner != nil {
		info, err := st.get()
		if err != nil {
			return false, err
		}
		if !matchIdentity(s.owner, info.UID, s.fs.OwnerName) {
			return false, nil
		}
	}
	if s.group != nil {
		info, err := st.get()
		if err != nil {
			return false, err
		}
		if !matchIdentity(s.group, info.GID, s.fs.GroupName) {
			return false, nil
		}
	}

	if s.perms != nil {
		info, err := st.get()
		if err != nil {
			return false, err
		}
		if !matchPerms(s.perms, info.Mode) {
			return false, nil
		}
	}

	return true, nil
}

func matchAny(patterns []*Pattern, name string) bool {
	for _, p := range patterns {
		if p.Match(name) {
			return true
		}
	}
	return false
}

func matchSuffix(exts []string, path string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func matchPredicates(preds []Predicate, path string) bool {
	for _, pred := range preds {
		if pred(path) {
			return true
		}
	}
	return false
}

// matchIdentity accepts either the decimal id or the resolved name. An id
// with no resolvable name simply has no name to match; that is not an
// error.
func matchIdentity(accepted []string, id uint32, resolve func(uint32) (string, error)) bool {
	decimal := strconv.FormatUint(uint64(id), 10)
	for _, want := range accepted {
		if want == decimal {
			return true
		}
	}

	name, err := resolve(id)
	if err != nil {
		return false
	}
	for _, want := range accepted {
		if want == name {
			return true
		}
	}
	return false
}

var octalPermRe = regexp.MustCompile(`^[0-7]{3}$`)

// matchPerms compares the file's canonical 3-digit octal mode against each
// spec. Returns false when the list is exhausted without a match.
func matchPerms(specs []string, mode os.FileMode) bool {
	canonical := fmt.Sprintf("%03o", mode.Perm())
	for _, spec := range specs {
		if canonicalPerm(spec) == canonical {
			return true
		}
	}
	return false
}

// canonicalPerm converts a symbolic rwx permission string ("rwxr-xr-x") to
// its 3-digit octal form. Octal specs pass through. Anything malformed is
// returned unchanged, so it can never equal a real octal mode.
func canonicalPerm(spec string) string {
	if octalPermRe.MatchString(spec) {
		return spec
	}
	if len(spec) != 9 {
		return spec
	}

	var digits [3]int
	for i := 0; i < 3; i++ {
		triad := spec[i*3 : i*3+3]
		for j, want := range []struct {
			set byte
			bit int
		}{
			{'r', 4},
			{'w', 2},
			{'x', 1},
		} {
			switch triad[j] {
			case want.set:
				digits[i] += want.bit
			case '-':
			default:
				return spec
			}
		}
	}
	return fmt.Sprintf("%d%d%d", digits[0], digits[1], digits[2])
}

// testDirective evaluates a single type/access test against path.
func (s *FilterSpec) testDirective(d Directive, path string, st *statCache) (bool, error) {
	switch d {
	case DirectiveExists:
		if _, err := s.fs.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return false, nil
			}
			return false, &DirectoryUnreadableError{Path: path, Err: err}
		}
		return true, nil

	case DirectiveSymlink:
		info, err := st.getLink()
		if err != nil {
			return false, err
		}
		return info.Mode&os.ModeSymlink != 0, nil

	case DirectiveTTY:
		ok, err := s.fs.IsTerminal(path)
		if err != nil {
			return false, &DirectoryUnreadableError{Path: path, Err: err}
		}
		return ok, nil

	case DirectiveASCII:
		head, err := s.fs.Sniff(path, sniffLen)
		if err != nil {
			return false, &DirectoryUnreadableError{Path: path, Err: err}
		}
		return isText(head), nil

	case DirectiveBinary:
		head, err := s.fs.Sniff(path, sniffLen)
		if err != nil {
			return false, &DirectoryUnreadableError{Path: path, Err: err}
		}
		// An empty file counts as both ascii and binary.
		if len(head) == 0 {
			return true, nil
		}
		return !isText(head), nil
	}

	info, err := st.get()
	if err != nil {
		return false, err
	}

	switch d {
	case DirectiveFile:
		return info.Mode.IsRegular(), nil
	case DirectiveDirectory:
		return info.Mode.IsDir(), nil
	case DirectiveEmpty:
		return info.Size == 0, nil
	case DirectiveNonempty:
		return info.Size > 0, nil
	case DirectiveFIFO:
		return info.Mode&os.ModeNamedPipe != 0, nil
	case DirectiveSocket:
		return info.Mode&os.ModeSocket != 0, nil
	case DirectiveBlock:
		return info.Mode&os.ModeDevice != 0 && info.Mode&os.ModeCharDevice == 0, nil
	case DirectiveCharacter:
		return info.Mode&os.ModeCharDevice != 0, nil
	case DirectiveSetuid:
		return info.Mode&os.ModeSetuid != 0, nil
	case DirectiveSetgid:
		return info.Mode&os.ModeSetgid != 0, nil
	case DirectiveSticky:
		return info.Mode&os.ModeSticky != 0, nil

	case DirectiveReadable:
		creds := s.fs.Creds()
		return accessAllowed(info, creds.EUID, creds.EGID, creds.Groups, 4), nil
	case DirectiveRealReadable:
		creds := s.fs.Creds()
		return accessAllowed(info, creds.UID, creds.GID, creds.Groups, 4), nil
	case DirectiveWritable:
		creds := s.fs.Creds()
		return accessAllowed(info, creds.EUID, creds.EGID, creds.Groups, 2), nil
	case DirectiveRealWritable:
		creds := s.fs.Creds()
		return accessAllowed(info, creds.UID, creds.GID, creds.Groups, 2), nil
	case DirectiveExecutable:
		creds := s.fs.Creds()
		return accessAllowed(info, creds.EUID, creds.EGID, creds.Groups, 1), nil
	case DirectiveRealExecutable:
		creds := s.fs.Creds()
		return accessAllowed(info, creds.UID, creds.GID, creds.Groups, 1), nil

	case DirectiveOwned:
		return int(info.UID) == s.fs.Creds().EUID, nil
	case DirectiveRealOwned:
		return int(info.UID) == s.fs.Creds().UID, nil

	case DirectiveModified:
		return time.Now().After(info.Mtime), nil
	case DirectiveAccessed:
		return time.Now().After(info.Atime), nil
	case DirectiveChanged:
		return time.Now().After(info.Ctime), nil
	}

	// Unreachable: directives are validated at set time.
	return false, &InvalidFilterValueError{Category: "directive", Value: string(d), Reason: "unknown directive"}
}

// accessAllowed applies the owner/group/other permission triads the way the
// kernel would for the given identity. bit is 4 (read), 2 (write), or 1
// (execute).
func accessAllowed(info Info, uid, gid int, groups []int, bit os.FileMode) bool {
	mode := info.Mode.Perm()

	if uid == 0 {
		// Root reads and writes anything; execute still needs at least
		// one x bit.
		if bit == 1 {
			return mode&0o111 != 0
		}
		return true
	}

	switch {
	case int(info.UID) == uid:
		return mode&(bit<<6) != 0
	case int(info.GID) == gid || containsInt(groups, int(info.GID)):
		return mode&(bit<<3) != 0
	default:
		return mode&bit != 0
	}
}

func containsInt(values []int, want int) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

// isText reports whether head looks like ASCII text: no NUL bytes and no
// more than a third of the bytes outside the printable range.
func isText(head []byte) bool {
	if len(head) == 0 {
		return true
	}

	odd := 0
	for _, c := range head {
		if c == 0 {
			return false
		}
		switch {
		case c >= 32 && c < 127:
		case c == '\n' || c == '\r' || c == '\t' || c == '\f' || c == '\b' || c == 27:
		default:
			odd++
		}
	}
	return odd*3 <= len(head)
}
