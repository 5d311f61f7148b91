// Package golden runs table-driven tests whose table lives in the file
// system: each case is a file under a testdata directory, and its expected
// outputs sit next to it with an extra extension.
//
// Expected outputs can be rewritten from the current results by setting the
// Refresh environment variable to a doublestar glob matching the cases to
// refresh, e.g. PRETTIFY_REFRESH='**'.
package golden

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus describes a directory of test cases.
type Corpus struct {
	// Directory holding the cases, relative to the file that calls Run.
	Root string

	// Environment variable holding the refresh glob. Empty disables
	// refreshing.
	Refresh string

	// File extension, without the dot, of the files that define a case.
	Extension string

	// Outputs produced by each case. A missing output file means the output
	// is expected to be empty.
	Outputs []Output

	// Test runs one case and returns one string per element of Outputs.
	Test func(t *testing.T, path, text string) []string
}

// Output is one expected result of a case, stored in "<case>.<Extension>".
type Output struct {
	Extension string

	// Compare may be nil, in which case outputs are compared after trimming
	// a single trailing newline.
	Compare Compare
}

// Compare returns "" if got matches want, and a description of the
// difference otherwise.
type Compare func(got, want string) string

// Run executes every case found under c.Root as a subtest.
func (c Corpus) Run(t *testing.T) {
	t.Helper()
	testDir := callerDir(0)
	root := filepath.Join(testDir, c.Root)

	cases, err := c.find(root)
	if err != nil {
		t.Fatalf("golden: cannot list %q: %v", root, err)
	}
	if len(cases) == 0 {
		t.Fatalf("golden: no *.%s cases in %q", c.Extension, root)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if refresh != "" && !doublestar.ValidatePattern(refresh) {
			t.Fatalf("golden: invalid glob in %s: %q", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		t.Logf("golden: refreshing outputs because %s=%s", c.Refresh, refresh)
	}

	for _, path := range cases {
		name, _ := filepath.Rel(testDir, path)
		name = filepath.ToSlash(name)
		t.Run(name, func(t *testing.T) {
			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("golden: cannot read case %q: %v", path, err)
			}
			results := c.Test(t, name, string(raw))
			if len(results) != len(c.Outputs) {
				t.Fatalf("golden: case returned %d results, want %d", len(results), len(c.Outputs))
			}

			doRefresh := false
			if refresh != "" {
				doRefresh, _ = doublestar.Match(refresh, name)
			}
			for i, output := range c.Outputs {
				outPath := fmt.Sprint(path, ".", output.Extension)
				if doRefresh {
					if err := write(outPath, results[i]); err != nil {
						t.Errorf("golden: %v", err)
					}
					continue
				}

				want, err := os.ReadFile(outPath)
				if err != nil && !errors.Is(err, os.ErrNotExist) {
					t.Errorf("golden: cannot read output %q: %v", outPath, err)
					continue
				}
				cmp := output.Compare
				if cmp == nil {
					cmp = DefaultCompare
				}
				if msg := cmp(results[i], string(want)); msg != "" {
					t.Errorf("output mismatch for %q:\n%s", outPath, msg)
				}
			}
		})
	}
}

func (c Corpus) find(root string) ([]string, error) {
	var cases []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.TrimPrefix(filepath.Ext(p), ".") == c.Extension {
			cases = append(cases, p)
		}
		return nil
	})
	sort.Strings(cases)
	return cases, err
}

func write(path, result string) error {
	if result == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("cannot delete output %q: %w", path, err)
		}
		return nil
	}
	if err := os.WriteFile(path, []byte(result+"\n"), 0o644); err != nil {
		return fmt.Errorf("cannot write output %q: %w", path, err)
	}
	return nil
}

// DefaultCompare compares got and want ignoring one trailing newline on
// each, and describes a mismatch as a colored unified diff.
func DefaultCompare(got, want string) string {
	got = strings.TrimSuffix(got, "\n")
	want = strings.TrimSuffix(want, "\n")
	if got == want {
		return ""
	}
	return Diff("want", "got", want, got, true)
}

// Diff returns a unified diff from a to b. With color set, added and
// removed lines get ANSI colors.
func Diff(aName, bName, a, b string, color bool) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(a),
		B:        splitLines(b),
		FromFile: aName,
		ToFile:   bName,
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	if !color {
		return diff
	}

	lines := strings.Split(diff, "\n")
	for i, s := range lines {
		switch {
		case strings.HasPrefix(s, "+"):
			lines[i] = "\033[1;92m" + s + "\033[0m"
		case strings.HasPrefix(s, "-"):
			lines[i] = "\033[1;91m" + s + "\033[0m"
		}
	}
	return strings.Join(lines, "\n")
}

// splitLines is difflib.SplitLines without the empty last line it adds
// for text that already ends in a newline.
func splitLines(s string) []string {
	return difflib.SplitLines(strings.TrimSuffix(s, "\n"))
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("golden: could not determine test file's directory")
	}
	return filepath.Dir(file)
}
