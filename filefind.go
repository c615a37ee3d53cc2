// Package filefind implements a declarative file discovery engine. A
// FilterSpec collects filter criteria per category (name patterns,
// extensions, size and timestamp expressions, type/access directives,
// ownership, permission modes, custom predicates), and Find walks the
// configured directories returning every path that satisfies all active
// categories.
//
// Each category is independently optional: an unset category imposes no
// constraint. Setting a category replaces its previous value wholesale;
// setting it with no values clears it back to inactive.
package filefind

import (
	"io"
	"slices"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/f0rk/file-find-declare/internal/datecmp"
	"github.com/f0rk/file-find-declare/internal/sizecmp"
)

// Predicate is a custom path test for SetSubs.
type Predicate func(path string) bool

// SizeComparator evaluates size comparison expressions against byte counts.
type SizeComparator interface {
	Validate(expr string) error
	Compare(expr string, size int64) (bool, error)
}

// TimeComparator evaluates date/duration comparison expressions against
// timestamps.
type TimeComparator interface {
	Validate(expr string) error
	Compare(expr string, t time.Time) (bool, error)
}

// FilterSpec is the aggregate search configuration plus the result of the
// most recent Find. It is not safe for concurrent use.
type FilterSpec struct {
	like     []*Pattern
	unlike   []*Pattern
	ext      []string
	subs     []Predicate
	dirs     []string
	size     []string
	changed  []string
	modified []string
	accessed []string
	recurse  bool
	is       []Directive
	isnt     []Directive
	owner    []string
	group    []string
	perms    []string

	files []string

	fs    FS
	sizes SizeComparator
	times TimeComparator
	log   logrus.FieldLogger
}

// Option configures a FilterSpec at construction time.
type Option func(*FilterSpec)

// WithFS replaces the default OS-backed filesystem capability.
func WithFS(fs FS) Option {
	return func(s *FilterSpec) { s.fs = fs }
}

// WithSizeComparator replaces the default size expression evaluator.
func WithSizeComparator(c SizeComparator) Option {
	return func(s *FilterSpec) { s.sizes = c }
}

// WithTimeComparator replaces the default date expression evaluator.
func WithTimeComparator(c TimeComparator) Option {
	return func(s *FilterSpec) { s.times = c }
}

// WithLogger enables debug tracing of the traversal.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *FilterSpec) { s.log = log }
}

// New creates an empty FilterSpec with no active categories.
func New(opts ...Option) *FilterSpec {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &FilterSpec{
		fs:    OSFilesystem(),
		sizes: sizecmp.New(),
		times: datecmp.New(),
		log:   discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetLike replaces the accepted-name patterns. A path matches when its base
// name matches any of them.
func (s *FilterSpec) SetLike(values ...Matchable) error {
	patterns, err := normalizePatterns("like", values)
	if err != nil {
		return err
	}
	s.like = patterns
	return nil
}

// SetUnlike replaces the rejected-name patterns. A path is disqualified when
// its base name matches any of them.
func (s *FilterSpec) SetUnlike(values ...Matchable) error {
	patterns, err := normalizePatterns("unlike", values)
	if err != nil {
		return err
	}
	s.unlike = patterns
	return nil
}

// SetExt replaces the accepted extensions. A path matches when it ends with
// any of them; no leading dot is required.
func (s *FilterSpec) SetExt(exts ...string) {
	s.ext = cloneOrNil(exts)
}

// SetSubs replaces the custom predicates. A path matches when any of them
// returns true.
func (s *FilterSpec) SetSubs(preds ...Predicate) {
	s.subs = cloneOrNil(preds)
}

// SetDirs replaces the root directories to search. Duplicates are collapsed
// during traversal, not here.
func (s *FilterSpec) SetDirs(dirs ...string) {
	s.dirs = cloneOrNil(dirs)
}

// SetSize replaces the size expressions, e.g. ">=10k" or "<1mi". A path
// must satisfy all of them.
func (s *FilterSpec) SetSize(exprs ...string) error {
	validated, err := validateExprs("size", exprs, s.sizes.Validate)
	if err != nil {
		return err
	}
	s.size = validated
	return nil
}

// SetChanged replaces the inode-change time expressions. A path must
// satisfy all of them.
func (s *FilterSpec) SetChanged(exprs ...string) error {
	validated, err := validateExprs("changed", exprs, s.times.Validate)
	if err != nil {
		return err
	}
	s.changed = validated
	return nil
}

// SetModified replaces the modification time expressions. A path must
// satisfy all of them.
func (s *FilterSpec) SetModified(exprs ...string) error {
	validated, err := validateExprs("modified", exprs, s.times.Validate)
	if err != nil {
		return err
	}
	s.modified = validated
	return nil
}

// SetAccessed replaces the access time expressions. A path must satisfy all
// of them.
func (s *FilterSpec) SetAccessed(exprs ...string) error {
	validated, err := validateExprs("accessed", exprs, s.times.Validate)
	if err != nil {
		return err
	}
	s.accessed = validated
	return nil
}

// SetRecurse controls whether subdirectories discovered during the walk are
// themselves walked.
func (s *FilterSpec) SetRecurse(recurse bool) {
	s.recurse = recurse
}

// SetIs replaces the required directives. A path must satisfy all of them.
func (s *FilterSpec) SetIs(directives ...Directive) error {
	validated, err := validateDirectives("is", directives)
	if err != nil {
		return err
	}
	s.is = validated
	return nil
}

// SetIsnt replaces the forbidden directives. A path is disqualified when it
// satisfies any of them.
func (s *FilterSpec) SetIsnt(directives ...Directive) error {
	validated, err := validateDirectives("isnt", directives)
	if err != nil {
		return err
	}
	s.isnt = validated
	return nil
}

// SetOwner replaces the accepted owners. Each value is a numeric user id or
// a user name; a path matches when its owner resolves to any of them.
func (s *FilterSpec) SetOwner(owners ...string) {
	s.owner = cloneOrNil(owners)
}

// SetGroup replaces the accepted groups, as numeric group ids or names.
func (s *FilterSpec) SetGroup(groups ...string) {
	s.group = cloneOrNil(groups)
}

// SetPerms replaces the accepted permission specs. Each value is either a
// 3-digit octal string ("755") or a symbolic 9-character rwx string
// ("rwxr-xr-x"); both are canonicalized at match time. A spec in neither
// form is kept as-is and can never equal a real mode.
func (s *FilterSpec) SetPerms(specs ...string) {
	s.perms = cloneOrNil(specs)
}

// Like returns the accepted-name patterns.
func (s *FilterSpec) Like() []*Pattern { return slices.Clone(s.like) }

// Unlike returns the rejected-name patterns.
func (s *FilterSpec) Unlike() []*Pattern { return slices.Clone(s.unlike) }

// Ext returns the accepted extensions.
func (s *FilterSpec) Ext() []string { return slices.Clone(s.ext) }

// Subs returns the custom predicates.
func (s *FilterSpec) Subs() []Predicate { return slices.Clone(s.subs) }

// Dirs returns the configured root directories.
func (s *FilterSpec) Dirs() []string { return slices.Clone(s.dirs) }

// Size returns the size expressions.
func (s *FilterSpec) Size() []string { return slices.Clone(s.size) }

// Changed returns the inode-change time expressions.
func (s *FilterSpec) Changed() []string { return slices.Clone(s.changed) }

// Modified returns the modification time expressions.
func (s *FilterSpec) Modified() []string { return slices.Clone(s.modified) }

// Accessed returns the access time expressions.
func (s *FilterSpec) Accessed() []string { return slices.Clone(s.accessed) }

// Recurse reports whether subdirectories are walked.
func (s *FilterSpec) Recurse() bool { return s.recurse }

// Is returns the required directives.
func (s *FilterSpec) Is() []Directive { return slices.Clone(s.is) }

// Isnt returns the forbidden directives.
func (s *FilterSpec) Isnt() []Directive { return slices.Clone(s.isnt) }

// Owner returns the accepted owners.
func (s *FilterSpec) Owner() []string { return slices.Clone(s.owner) }

// Group returns the accepted groups.
func (s *FilterSpec) Group() []string { return slices.Clone(s.group) }

// Perms returns the accepted permission specs as supplied.
func (s *FilterSpec) Perms() []string { return slices.Clone(s.perms) }

// Files returns the matches accumulated by the most recent successful Find.
func (s *FilterSpec) Files() []string { return slices.Clone(s.files) }

// validateExprs checks every expression before any state changes, so a
// rejected call leaves the category untouched.
func validateExprs(category string, exprs []string, validate func(string) error) ([]string, error) {
	var errs *multierror.Error
	for _, expr := range exprs {
		if err := validate(expr); err != nil {
			errs = multierror.Append(errs, &InvalidFilterValueError{
				Category: category,
				Value:    expr,
				Reason:   err.Error(),
			})
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return cloneOrNil(exprs), nil
}

func validateDirectives(category string, directives []Directive) ([]Directive, error) {
	var errs *multierror.Error
	for _, d := range directives {
		if !d.valid() {
			errs = multierror.Append(errs, &InvalidFilterValueError{
				Category: category,
				Value:    string(d),
				Reason:   "unknown directive",
			})
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return cloneOrNil(directives), nil
}

// cloneOrNil copies values, mapping an empty input to nil so the category
// reads as inactive.
func cloneOrNil[T any](values []T) []T {
	if len(values) == 0 {
		return nil
	}
	return slices.Clone(values)
}
