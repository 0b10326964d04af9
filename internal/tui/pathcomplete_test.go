package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTabCompletePath_UniqueMatch(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "website"), 0o755); err != nil {
		t.Fatal(err)
	}

	got := tabCompletePath(filepath.Join(root, "web"))
	want := filepath.Join(root, "website") + "/"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTabCompletePath_CommonPrefix(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, d := range []string{"web-api", "web-app"} {
		if err := os.Mkdir(filepath.Join(root, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	got := tabCompletePath(filepath.Join(root, "w"))
	want := filepath.Join(root, "web-a")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTabCompletePath_DirGainsSlash(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	got := tabCompletePath(root)
	if got != root+"/" {
		t.Fatalf("got %q, want %q", got, root+"/")
	}
}

func TestTabCompletePath_SkipsHiddenAndFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".hidden"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "hatch"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	input := filepath.Join(root, "h")
	if got := tabCompletePath(input); got != input {
		t.Fatalf("files and hidden dirs must not complete; got %q", got)
	}
}

func TestTabCompletePath_NoMatchUnchanged(t *testing.T) {
	t.Parallel()

	input := filepath.Join(t.TempDir(), "zzz")
	if got := tabCompletePath(input); got != input {
		t.Fatalf("got %q, want unchanged input", got)
	}
}

func TestExpandTilde(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandTilde("~/x"); got != filepath.Join(home, "x") {
		t.Fatalf("got %q", got)
	}
	if got := ExpandTilde("~"); got != home {
		t.Fatalf("got %q", got)
	}
	if got := ExpandTilde("/abs/path"); got != "/abs/path" {
		t.Fatalf("absolute paths must pass through; got %q", got)
	}
}

func TestLongestCommonPrefix(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"solo"}, "solo"},
		{[]string{"web-api", "web-app"}, "web-a"},
		{[]string{"abc", "xyz"}, ""},
	}
	for _, tc := range cases {
		if got := longestCommonPrefix(tc.in); got != tc.want {
			t.Fatalf("lcp(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTabCompletePath_EmptyGoesHome(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got := tabCompletePath("")
	if !strings.HasPrefix(got, home) {
		t.Fatalf("empty input must complete to home; got %q", got)
	}
}
