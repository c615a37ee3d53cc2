package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	filefind "github.com/f0rk/file-find-declare"
	"github.com/f0rk/file-find-declare/internal/specfile"
)

var version = "dev"

// colorMode represents when to use colored output.
type colorMode string

const (
	colorAuto   colorMode = "auto"
	colorAlways colorMode = "always"
	colorNever  colorMode = "never"
)

// String is used both by fmt.Print and by Cobra in help text.
func (c *colorMode) String() string {
	return string(*c)
}

// Set must have pointer receiver to validate and set the value.
func (c *colorMode) Set(v string) error {
	switch v {
	case "auto", "always", "never":
		*c = colorMode(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"auto\", \"always\", or \"never\"")
	}
}

// Type is only used in help text.
func (c *colorMode) Type() string {
	return "colorMode"
}

// rootFlags collects the flag values for one invocation.
type rootFlags struct {
	color    colorMode
	specPath string
	verbose  bool

	like     []string
	unlike   []string
	ext      []string
	size     []string
	changed  []string
	modified []string
	accessed []string
	is       []string
	isnt     []string
	owner    []string
	group    []string
	perms    []string
	recurse  bool
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{color: colorAuto}

	cmd := &cobra.Command{
		Use:   "filefind [flags] <directory>...",
		Short: "Find files matching declarative filter criteria",
		Long: `filefind walks the given directories and prints every path that
satisfies all of the configured criteria.

Name patterns use shell-glob syntax against the base name:
  *              Match any characters (e.g., "*.go")
  ?              Match a single character (e.g., "file?.txt")
  [...]          Match a character class (e.g., "file[0-9].txt")
  {...}          Match alternatives (e.g., "*.{go,md}")

Size expressions are [op]magnitude[unit] with op one of < <= > >= (default
equality) and unit one of k/ki/m/mi/g/gi. Date expressions compare a
timestamp against an absolute date (2024-01-01) or an age (2d, 3weeks).

Criteria may also be loaded from a YAML bundle with --spec; flags given on
the command line override the bundle per category.

Examples:
  filefind -l "*.log" /var/log
  filefind -r -e go --size ">=10k" .
  filefind -r --is file --isnt binary --modified "<2d" ~/src
  filefind --spec criteria.yaml
  filefind --perms 755 --owner root /usr/local/bin`,
		Version: version,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, flags)
		},
	}

	cmd.Flags().Var(&flags.color, "color",
		"colorize output: auto, always, never")
	cmd.Flags().StringVar(&flags.specPath, "spec", "",
		"load criteria from a YAML bundle")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false,
		"trace the traversal on stderr")
	cmd.Flags().StringSliceVarP(&flags.like, "like", "l", nil,
		"name must match a glob (can be specified multiple times)")
	cmd.Flags().StringSliceVar(&flags.unlike, "unlike", nil,
		"name must not match a glob")
	cmd.Flags().StringSliceVarP(&flags.ext, "ext", "e", nil,
		"path must end with an extension")
	cmd.Flags().StringSliceVar(&flags.size, "size", nil,
		"size expression, e.g. \">=10k\" (all must hold)")
	cmd.Flags().StringSliceVar(&flags.changed, "changed", nil,
		"inode-change time expression (all must hold)")
	cmd.Flags().StringSliceVar(&flags.modified, "modified", nil,
		"modification time expression (all must hold)")
	cmd.Flags().StringSliceVar(&flags.accessed, "accessed", nil,
		"access time expression (all must hold)")
	cmd.Flags().StringSliceVar(&flags.is, "is", nil,
		"required directive, e.g. file, readable (all must hold)")
	cmd.Flags().StringSliceVar(&flags.isnt, "isnt", nil,
		"forbidden directive (none may hold)")
	cmd.Flags().StringSliceVar(&flags.owner, "owner", nil,
		"owner as uid or name")
	cmd.Flags().StringSliceVar(&flags.group, "group", nil,
		"group as gid or name")
	cmd.Flags().StringSliceVar(&flags.perms, "perms", nil,
		"permission mode as octal (755) or symbolic (rwxr-xr-x)")
	cmd.Flags().BoolVarP(&flags.recurse, "recurse", "r", false,
		"descend into subdirectories")

	return cmd
}

func run(cmd *cobra.Command, args []string, flags *rootFlags) error {
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	if flags.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	spec := filefind.New(filefind.WithLogger(logger))

	if flags.specPath != "" {
		bundle, err := specfile.Load(flags.specPath)
		if err != nil {
			return err
		}
		if err := bundle.Apply(spec); err != nil {
			return err
		}
	}

	if err := applyFlags(spec, flags); err != nil {
		return err
	}

	if len(args) > 0 {
		spec.SetDirs(args...)
	}
	if len(spec.Dirs()) == 0 {
		return fmt.Errorf("no directories to search (give them as arguments or via --spec)")
	}

	out := newOutput(cmd.OutOrStdout(), cmd.ErrOrStderr(), colorize(flags.color))

	matches, err := spec.Find()
	if err != nil {
		return err
	}
	for _, match := range matches {
		out.Match(match)
	}
	if len(matches) == 0 {
		out.Warningf("no files matched")
	}
	return nil
}

// applyFlags layers command-line criteria over whatever the bundle set.
func applyFlags(spec *filefind.FilterSpec, flags *rootFlags) error {
	if len(flags.like) > 0 {
		if err := spec.SetLike(asGlobs(flags.like)...); err != nil {
			return err
		}
	}
	if len(flags.unlike) > 0 {
		if err := spec.SetUnlike(asGlobs(flags.unlike)...); err != nil {
			return err
		}
	}
	if len(flags.ext) > 0 {
		spec.SetExt(flags.ext...)
	}
	if len(flags.size) > 0 {
		if err := spec.SetSize(flags.size...); err != nil {
			return err
		}
	}
	if len(flags.changed) > 0 {
		if err := spec.SetChanged(flags.changed...); err != nil {
			return err
		}
	}
	if len(flags.modified) > 0 {
		if err := spec.SetModified(flags.modified...); err != nil {
			return err
		}
	}
	if len(flags.accessed) > 0 {
		if err := spec.SetAccessed(flags.accessed...); err != nil {
			return err
		}
	}
	if len(flags.is) > 0 {
		directives, err := asDirectives(flags.is)
		if err != nil {
			return err
		}
		if err := spec.SetIs(directives...); err != nil {
			return err
		}
	}
	if len(flags.isnt) > 0 {
		directives, err := asDirectives(flags.isnt)
		if err != nil {
			return err
		}
		if err := spec.SetIsnt(directives...); err != nil {
			return err
		}
	}
	if len(flags.owner) > 0 {
		spec.SetOwner(flags.owner...)
	}
	if len(flags.group) > 0 {
		spec.SetGroup(flags.group...)
	}
	if len(flags.perms) > 0 {
		spec.SetPerms(flags.perms...)
	}
	if flags.recurse {
		spec.SetRecurse(true)
	}
	return nil
}

func asGlobs(exprs []string) []filefind.Matchable {
	values := make([]filefind.Matchable, len(exprs))
	for i, expr := range exprs {
		values[i] = filefind.Glob(expr)
	}
	return values
}

func asDirectives(names []string) ([]filefind.Directive, error) {
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

func colorize(mode colorMode) bool {
	switch mode {
	case colorAlways:
		return true
	case colorNever:
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
}
