package filefind

import "slices"

// Directive names a file type or access test usable with SetIs and SetIsnt.
// The set is closed; ParseDirective rejects anything else.
type Directive string

const (
	DirectiveReadable       Directive = "readable"
	DirectiveRealReadable   Directive = "r_readable"
	DirectiveWritable       Directive = "writable"
	DirectiveRealWritable   Directive = "r_writable"
	DirectiveExecutable     Directive = "executable"
	DirectiveRealExecutable Directive = "r_executable"
	DirectiveOwned          Directive = "owned"
	DirectiveRealOwned      Directive = "r_owned"
	DirectiveExists         Directive = "exists"
	DirectiveFile           Directive = "file"
	DirectiveEmpty          Directive = "empty"
	DirectiveDirectory      Directive = "directory"
	DirectiveNonempty       Directive = "nonempty"
	DirectiveSymlink        Directive = "symlink"
	DirectiveFIFO           Directive = "fifo"
	DirectiveSetuid         Directive = "setuid"
	DirectiveSocket         Directive = "socket"
	DirectiveSetgid         Directive = "setgid"
	DirectiveBlock          Directive = "block"
	DirectiveSticky         Directive = "sticky"
	DirectiveCharacter      Directive = "character"
	DirectiveTTY            Directive = "tty"
	DirectiveModified       Directive = "modified"
	DirectiveAccessed       Directive = "accessed"
	DirectiveASCII          Directive = "ascii"
	DirectiveChanged        Directive = "changed"
	DirectiveBinary         Directive = "binary"
)

var allDirectives = []Directive{
	DirectiveReadable, DirectiveRealReadable,
	DirectiveWritable, DirectiveRealWritable,
	DirectiveExecutable, DirectiveRealExecutable,
	DirectiveOwned, DirectiveRealOwned,
	DirectiveExists, DirectiveFile, DirectiveEmpty, DirectiveDirectory,
	DirectiveNonempty, DirectiveSymlink, DirectiveFIFO, DirectiveSetuid,
	DirectiveSocket, DirectiveSetgid, DirectiveBlock, DirectiveSticky,
	DirectiveCharacter, DirectiveTTY, DirectiveModified, DirectiveAccessed,
	DirectiveASCII, DirectiveChanged, DirectiveBinary,
}

// Directives returns the full directive set.
func Directives() []Directive {
	return slices.Clone(allDirectives)
}

func (d Directive) valid() bool {
	return slices.Contains(allDirectives, d)
}

func (d Directive) String() string { return string(d) }

// ParseDirective converts a directive name into a Directive.
func ParseDirective(s string) (Directive, error) {
	d := Directive(s)
	if !d.valid() {
		return "", &InvalidFilterValueError{
			Category: "directive",
			Value:    s,
			Reason:   "unknown directive",
		}
	}
	return d, nil
}
