package discovery

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// mkRepo creates dir/.git below root and returns the repository path.
func mkRepo(t *testing.T, root, rel string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Join(path, MetadataDir), 0755); err != nil {
		t.Fatalf("failed to create repo %s: %v", rel, err)
	}
	return path
}

// TestFindRepositories verifies the walk reports every repository root.
//
// Scenario: A projects root holds flat, nested and deeply placed repositories plus noise
// Expected: All directories with a .git directory are found in lexical order; skipped dirs,
// worktree .git files and symlinks are ignored
func TestFindRepositories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	a := mkRepo(t, root, "a")
	nested := mkRepo(t, root, "a/vendor/lib")
	deep := mkRepo(t, root, "b/c/d")
	mkRepo(t, root, "node_modules/pkg")

	// Worktree checkout: .git is a file
	worktree := filepath.Join(root, "wt")
	if err := os.MkdirAll(worktree, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(worktree, ".git"), []byte("gitdir: /elsewhere\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// Symlink to a repository is not followed
	if err := os.Symlink(deep, filepath.Join(root, "link")); err != nil {
		t.Fatal(err)
	}

	got, err := FindRepositories(context.Background(), root, Options{
		Skip: func(name string) bool { return name == "node_modules" },
	})
	if err != nil {
		t.Fatalf("FindRepositories() error = %v", err)
	}

	want := []string{a, nested, deep}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindRepositories() = %v, want %v", got, want)
	}
}

func TestFindRepositories_RootIsRepository(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mkRepo(t, root, ".")
	child := mkRepo(t, root, "child")

	got, err := FindRepositories(context.Background(), root, Options{})
	if err != nil {
		t.Fatalf("FindRepositories() error = %v", err)
	}
	want := []string{root, child}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindRepositories() = %v, want %v", got, want)
	}
}

func TestFindRepositories_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := FindRepositories(context.Background(), filepath.Join(t.TempDir(), "missing"), Options{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("FindRepositories() error = %v, want ErrNotExist", err)
	}
}

func TestFindRepositories_Cancelled(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mkRepo(t, root, "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FindRepositories(ctx, root, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("FindRepositories() error = %v, want context.Canceled", err)
	}
}

func TestIsRepository(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	repo := mkRepo(t, root, "repo")

	if !IsRepository(repo) {
		t.Error("IsRepository() = false for directory with .git")
	}
	if IsRepository(root) {
		t.Error("IsRepository() = true for plain directory")
	}
	if IsRepository(filepath.Join(root, "missing")) {
		t.Error("IsRepository() = true for missing path")
	}
}

// TestFilterNested verifies that repositories inside other repositories are dropped.
//
// Scenario: Candidate lists contain parents, children, look-alike siblings and duplicates
// Expected: Only outermost repositories remain, sorted lexically
func TestFilterNested(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     []string
		expected []string
	}{
		{"empty string", []string{""}, []string{""}},
		{"single", []string{"jfds"}, []string{"jfds"}},
		{
			"parent wins over children",
			[]string{"/myroot/a/long/path", "/myroot/a", "/myroot/a/long/path/longer"},
			[]string{"/myroot/a"},
		},
		{
			"prefix siblings kept",
			[]string{"myroot/notrust", "myroot/notrust2"},
			[]string{"myroot/notrust", "myroot/notrust2"},
		},
		{
			"input order irrelevant",
			[]string{"myroot/notrust2", "myroot/notrust"},
			[]string{"myroot/notrust", "myroot/notrust2"},
		},
		{
			"segment not substring",
			[]string{"/a/long", "/a/longer/x"},
			[]string{"/a/long", "/a/longer/x"},
		},
		{
			"duplicates collapse",
			[]string{"/r/x", "/r/x", "/r/x/y"},
			[]string{"/r/x"},
		},
		{
			"punctuated segments",
			[]string{"/r/10.0.0.1/repo", "/r/10.0.0.1", "/r/10.0.0.10/repo", "/r/a-b", "/r/a/b"},
			[]string{"/r/10.0.0.1", "/r/10.0.0.10/repo", "/r/a-b", "/r/a/b"},
		},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := FilterNested(tt.data)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("FilterNested(%v) = %v, want %v", tt.data, got, tt.expected)
			}
		})
	}
}

func TestFilterNested_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := []string{"/b", "/a"}
	FilterNested(in)
	if in[0] != "/b" || in[1] != "/a" {
		t.Errorf("FilterNested mutated its input: %v", in)
	}
}

// TestFilterNested_Properties checks idempotence and that no survivor lies
// inside another survivor.
func TestFilterNested_Properties(t *testing.T) {
	t.Parallel()

	sets := [][]string{
		{"/p/a", "/p/a/b", "/p/a/b/c", "/p/ab", "/p/b"},
		{"x/y/z", "x", "x/y", "w"},
		{"/r/1.2.3.4/a", "/r/1.2.3.4", "/r/1.2.3.40", "/r/1.2.3"},
		{"a", "b", "c"},
	}

	for _, set := range sets {
		once := FilterNested(set)
		twice := FilterNested(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("FilterNested not idempotent for %v: %v then %v", set, once, twice)
		}
		for i, p := range once {
			for j, q := range once {
				if i != j && strings.HasPrefix(p+"/", q+"/") {
					t.Errorf("FilterNested(%v) kept %q inside %q", set, p, q)
				}
			}
		}
	}
}
