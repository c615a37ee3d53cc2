package filefind

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Matchable is a name-matching specification accepted by SetLike and
// SetUnlike: either a Glob string, compiled at set time, or an already
// compiled *Pattern, which passes through unchanged.
type Matchable interface {
	pattern() (*Pattern, error)
}

// Glob is a shell-style wildcard expression:
//
//	*              Match any run of characters (e.g., "*.go")
//	?              Match a single character (e.g., "file?.txt")
//	[...]          Match a character class (e.g., "file[0-9].txt")
//	{...}          Match alternatives (e.g., "*.{go,md}")
type Glob string

func (g Glob) pattern() (*Pattern, error) { return CompilePattern(string(g)) }

// Pattern is a compiled name matcher.
type Pattern struct {
	expr string
}

func (p *Pattern) pattern() (*Pattern, error) { return p, nil }

// CompilePattern compiles a glob expression into a Pattern.
func CompilePattern(expr string) (*Pattern, error) {
	if !doublestar.ValidatePattern(expr) {
		return nil, fmt.Errorf("malformed glob %q", expr)
	}
	return &Pattern{expr: expr}, nil
}

// MustCompilePattern is like CompilePattern but panics if the expression
// cannot be compiled.
func MustCompilePattern(expr string) *Pattern {
	p, err := CompilePattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether name matches the pattern. The entire name must
// match, per glob convention.
func (p *Pattern) Match(name string) bool {
	ok, err := doublestar.Match(p.expr, name)
	return err == nil && ok
}

func (p *Pattern) String() string { return p.expr }

// normalizePatterns compiles a mixed list of glob strings and precompiled
// patterns into a uniform ordered list.
func normalizePatterns(category string, values []Matchable) ([]*Pattern, error) {
	if len(values) == 0 {
		return nil, nil
	}

	patterns := make([]*Pattern, 0, len(values))
	for _, v := range values {
		p, err := v.pattern()
		if err != nil {
			return nil, &InvalidFilterValueError{
				Category: category,
				Value:    fmt.Sprint(v),
				Reason:   err.Error(),
			}
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}
