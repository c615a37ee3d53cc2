package filefind

import "fmt"

// InvalidFilterValueError reports a criteria value outside its category's
// accepted grammar or type. It is returned at configuration time and the
// FilterSpec is left unchanged.
type InvalidFilterValueError struct {
	Category string
	Value    string
	Reason   string
}

func (e *InvalidFilterValueError) Error() string {
	return fmt.Sprintf("invalid %s value %q: %s", e.Category, e.Value, e.Reason)
}

// DirectoryUnreadableError reports a directory that could not be listed, or
// a path whose metadata could not be read, during Find. The traversal is
// aborted with no partial results.
type DirectoryUnreadableError struct {
	Path string
	Err  error
}

func (e *DirectoryUnreadableError) Error() string {
	return fmt.Sprintf("unreadable path %s: %v", e.Path, e.Err)
}

func (e *DirectoryUnreadableError) Unwrap() error { return e.Err }
