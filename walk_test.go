package filefind

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// writeFile creates a file of the given size under dir.
func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindNoCriteriaListsImmediateEntries(t *testing.T) {
	root := t.TempDir()
	a := writeFile(t, root, "a.txt", 1)
	b := writeFile(t, root, "b.txt", 1)
	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	nested := writeFile(t, sub, "nested.txt", 1)

	spec := New()
	spec.SetDirs(root)

	got, err := spec.Find()
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	// Without recursion only the immediate entries appear; the
	// subdirectory itself is a candidate, its contents are not.
	want := []string{a, b, sub}
	slices.Sort(got)
	if !slices.Equal(got, want) {
		t.Errorf("Find = %v, want %v", got, want)
	}
	if slices.Contains(got, nested) {
		t.Errorf("non-recursive Find descended into %s", sub)
	}
}

func TestFindRecurseReachesFullTree(t *testing.T) {
	root := t.TempDir()
	a := writeFile(t, root, "a.txt", 1)
	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	nested := writeFile(t, sub, "nested.txt", 1)

	spec := New()
	spec.SetDirs(root)
	spec.SetRecurse(true)

	got, err := spec.Find()
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	want := []string{a, sub, nested}
	slices.Sort(got)
	if !slices.Equal(got, want) {
		t.Errorf("Find = %v, want %v", got, want)
	}
}

func TestFindEndToEndScenario(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "root")
	sub := filepath.Join(root, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	a := writeFile(t, root, "a.txt", 500)
	writeFile(t, sub, "b.txt", 50000)

	spec := New()
	spec.SetDirs(root)
	spec.SetRecurse(true)
	spec.SetExt("txt")
	if err := spec.SetSize("<1k"); err != nil {
		t.Fatal(err)
	}

	got, err := spec.Find()
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !slices.Equal(got, []string{a}) {
		t.Errorf("Find = %v, want [%s]", got, a)
	}
}

func TestFindIdempotent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", 1)
	writeFile(t, root, "b.txt", 1)

	spec := New()
	spec.SetDirs(root)

	first, err := spec.Find()
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	second, err := spec.Find()
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !slices.Equal(first, second) {
		t.Errorf("results differ between runs: %v vs %v", first, second)
	}
	if !slices.Equal(spec.Files(), second) {
		t.Errorf("Files() = %v, want %v", spec.Files(), second)
	}
}

func TestFindNoDirsReturnsEmpty(t *testing.T) {
	spec := New(WithFS(newFakeFS()))
	got, err := spec.Find()
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Find = %v, want empty", got)
	}
}

func TestFindDeduplicatesDirs(t *testing.T) {
	fs := newFakeFS()
	fs.addDir("a", "f.txt")
	fs.addFile("a/f.txt", 0o644, 10)

	spec := New(WithFS(fs))
	spec.SetDirs("a", "a", "a/")

	got, err := spec.Find()
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !slices.Equal(got, []string{"a/f.txt"}) {
		t.Errorf("Find = %v, want [a/f.txt]", got)
	}
	if calls := fs.readDirCalls["a"]; calls != 1 {
		t.Errorf("directory a listed %d times, want 1", calls)
	}
}

func TestFindRecursionIndependentOfMatch(t *testing.T) {
	fs := newFakeFS()
	fs.addDir("root", "sub")
	fs.addDir("root/sub", "inner.txt")
	fs.addFile("root/sub/inner.txt", 0o644, 10)

	spec := New(WithFS(fs))
	spec.SetDirs("root")
	spec.SetRecurse(true)
	if err := spec.SetIs(DirectiveFile); err != nil {
		t.Fatal(err)
	}

	got, err := spec.Find()
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	// The subdirectory fails the "file" test but is still descended
	// into, so the nested file appears.
	if !slices.Equal(got, []string{"root/sub/inner.txt"}) {
		t.Errorf("Find = %v, want [root/sub/inner.txt]", got)
	}
}

func TestFindUnreadableDirIsFatal(t *testing.T) {
	fs := newFakeFS()
	fs.addDir("good", "f.txt")
	fs.addFile("good/f.txt", 0o644, 10)

	spec := New(WithFS(fs))
	spec.SetDirs("good")

	previous, err := spec.Find()
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	fs.failDirs["bad"] = os.ErrPermission
	spec.SetDirs("good", "bad")

	_, err = spec.Find()
	if err == nil {
		t.Fatal("expected error for unreadable directory")
	}

	var unreadable *DirectoryUnreadableError
	if !errors.As(err, &unreadable) {
		t.Fatalf("expected DirectoryUnreadableError, got %T", err)
	}
	if unreadable.Path != "bad" {
		t.Errorf("Path = %q, want %q", unreadable.Path, "bad")
	}

	// The previous result cache is untouched by the failed run.
	if !slices.Equal(spec.Files(), previous) {
		t.Errorf("Files() = %v, want %v", spec.Files(), previous)
	}
}

func TestFindFollowsSymlinkedDirs(t *testing.T) {
	root := t.TempDir()
	real := filepath.Join(root, "real")
	if err := os.Mkdir(real, 0o755); err != nil {
		t.Fatal(err)
	}
	inner := writeFile(t, real, "inner.txt", 1)

	link := filepath.Join(root, "link")
	if err := os.Symlink(real, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	spec := New()
	spec.SetDirs(root)
	spec.SetRecurse(true)
	spec.SetExt("txt")

	got, err := spec.Find()
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	want := []string{inner, filepath.Join(link, "inner.txt")}
	slices.Sort(got)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("Find = %v, want %v", got, want)
	}
}

func TestFindDanglingSymlinkNotRecursed(t *testing.T) {
	root := t.TempDir()
	if err := os.Symlink(filepath.Join(root, "nowhere"), filepath.Join(root, "dangling")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	a := writeFile(t, root, "a.txt", 1)

	spec := New()
	spec.SetDirs(root)
	spec.SetRecurse(true)
	spec.SetExt("txt")

	got, err := spec.Find()
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !slices.Equal(got, []string{a}) {
		t.Errorf("Find = %v, want [%s]", got, a)
	}
}
