// Package specfile loads declarative criteria bundles from YAML. A bundle
// maps category names to values; every multi-valued category accepts either
// a single scalar or a list:
//
//	dirs: /var/log
//	ext: [log, txt]
//	size: [">=10k", "<1mi"]
//	recurse: true
//	isnt: directory
package specfile

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	filefind "github.com/f0rk/file-find-declare"
)

// Bundle is a parsed criteria bundle. Nil slices mean the category was
// absent and should be left alone when applied.
type Bundle struct {
	Like     []string `mapstructure:"like"`
	Unlike   []string `mapstructure:"unlike"`
	Ext      []string `mapstructure:"ext"`
	Dirs     []string `mapstructure:"dirs"`
	Size     []string `mapstructure:"size"`
	Changed  []string `mapstructure:"changed"`
	Modified []string `mapstructure:"modified"`
	Accessed []string `mapstructure:"accessed"`
	Recurse  bool     `mapstructure:"recurse"`
	Is       []string `mapstructure:"is"`
	Isnt     []string `mapstructure:"isnt"`
	Owner    []string `mapstructure:"owner"`
	Group    []string `mapstructure:"group"`
	Perms    []string `mapstructure:"perms"`
}

// Load reads and parses the bundle at path.
func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading criteria bundle: %w", err)
	}
	return Parse(data)
}

// Parse parses a YAML criteria bundle. Unknown keys are rejected.
func Parse(data []byte) (*Bundle, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing criteria bundle: %w", err)
	}

	var bundle Bundle
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &bundle,
		// A bare scalar is accepted wherever a list is expected.
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid criteria bundle: %w", err)
	}
	return &bundle, nil
}

// Apply configures spec from the bundle. Absent categories are left
// untouched, so flags layered on top of a bundle override per category.
func (b *Bundle) Apply(spec *filefind.FilterSpec) error {
	if b.Like != nil {
		if err := spec.SetLike(globs(b.Like)...); err != nil {
			return err
		}
	}
	if b.Unlike != nil {
		if err := spec.SetUnlike(globs(b.Unlike)...); err != nil {
			return err
		}
	}
	if b.Ext != nil {
		spec.SetExt(b.Ext...)
	}
	if b.Dirs != nil {
		spec.SetDirs(b.Dirs...)
	}
	if b.Size != nil {
		if err := spec.SetSize(b.Size...); err != nil {
			return err
		}
	}
	if b.Changed != nil {
		if err := spec.SetChanged(b.Changed...); err != nil {
			return err
		}
	}
	if b.Modified != nil {
		if err := spec.SetModified(b.Modified...); err != nil {
			return err
		}
	}
	if b.Accessed != nil {
		if err := spec.SetAccessed(b.Accessed...); err != nil {
			return err
		}
	}
	if b.Recurse {
		spec.SetRecurse(true)
	}
	if b.Is != nil {
		directives, err := parseDirectives(b.Is)
		if err != nil {
			return err
		}
		if err := spec.SetIs(directives...); err != nil {
			return err
		}
	}
	if b.Isnt != nil {
		directives, err := parseDirectives(b.Isnt)
		if err != nil {
			return err
		}
		if err := spec.SetIsnt(directives...); err != nil {
			return err
		}
	}
	if b.Owner != nil {
		spec.SetOwner(b.Owner...)
	}
	if b.Group != nil {
		spec.SetGroup(b.Group...)
	}
	if b.Perms != nil {
		spec.SetPerms(b.Perms...)
	}
	return nil
}

func globs(exprs []string) []filefind.Matchable {
	values := make([]filefind.Matchable, len(exprs))
	for i, expr := range exprs {
		values[i] = filefind.Glob(expr)
	}
	return values
}

func parseDirectives(names []string) ([]filefind.Directive, error) {
	directives := make([]filefind.Directive, len(names))
	for i, name := range names {
		d, err := filefind.ParseDirective(name)
		if err != nil {
			return nil, err
		}
		directives[i] = d
	}
	return directives, nil
}
