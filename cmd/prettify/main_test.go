package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shabbyrobe/prettify/internal/prefs"
)

type cli struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) cli {
	t.Helper()
	args = append([]string{"-prefs", filepath.Join(t.TempDir(), "prefs.yaml")}, args...)
	var out, errb bytes.Buffer
	code := run(args, strings.NewReader(stdin), &out, &errb)
	return cli{code: code, stdout: out.String(), stderr: errb.String()}
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestStdinJSON(t *testing.T) {
	res := runCLI(t, `{"a":[1,2]}`)
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "{\n  \"a\": [\n    1,\n    2\n  ]\n}\n", res.stdout)
}

func TestStdinXMLMinify(t *testing.T) {
	res := runCLI(t, "<a>\n  <b>1</b>\n</a>\n", "-m")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "<a><b>1</b></a>\n", res.stdout)
}

func TestStdinIndent(t *testing.T) {
	res := runCLI(t, "<a><b/></a>", "-indent", "\t")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "<a>\n\t<b/>\n</a>\n", res.stdout)
}

func TestStdinForcedLanguage(t *testing.T) {
	res := runCLI(t, "<a/>", "-lang", "json")
	assert.Equal(t, exitFail, res.code)
	assert.Contains(t, res.stderr, "Invalid JSON")
	assert.Empty(t, res.stdout)
}

func TestStdinInvalid(t *testing.T) {
	res := runCLI(t, "<a><b></a>")
	assert.Equal(t, exitFail, res.code)
	assert.Contains(t, res.stderr, "prettify: ")
	assert.Contains(t, res.stderr, "<stdin>")
	assert.Contains(t, res.stderr, "Invalid XML")
	assert.Empty(t, res.stdout)
}

func TestStdinList(t *testing.T) {
	res := runCLI(t, "[1]\n", "-m", "-l")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Empty(t, res.stdout)

	res = runCLI(t, "[ 1 ]\n", "-m", "-l")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "<stdin>\n", res.stdout)
}

func TestDebugDump(t *testing.T) {
	res := runCLI(t, "<a><b/></a>", "-debug")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stderr, "# <stdin>")
	assert.Contains(t, res.stderr, "prettify.Document")
}

func TestUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{"-lang", "yaml"},
		{"-w"},
		{"-j", "0"},
		{"-theme", "blue"},
		{"-w", "-l", "x.json"},
		{"-session", "x.json"},
		{"-nope"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			res := runCLI(t, "", args...)
			assert.Equal(t, exitUsage, res.code)
			assert.Contains(t, res.stderr, "usage: prettify")
		})
	}
}

func TestFilesToStdout(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"b.json": `{"z":true}`,
		"a.xml":  `<r><x>1</x></r>`,
	})
	res := runCLI(t, "", filepath.Join(dir, "b.json"), filepath.Join(dir, "a.xml"))
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "{\n  \"z\": true\n}\n<r>\n  <x>1</x>\n</r>\n", res.stdout)
}

func TestDirectoryListAndWrite(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.json":         `{"a":1}`,
		"sub/b.svg":      `<svg><g/></svg>`,
		"sub/c.xml":      "<c/>\n",
		"notes.txt":      "not touched",
		"sub/deep/d.xml": "<d><e/></d>",
	})

	res := runCLI(t, "", "-l", dir)
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, strings.Join([]string{
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "sub", "b.svg"),
		filepath.Join(dir, "sub", "deep", "d.xml"),
	}, "\n")+"\n", res.stdout)

	res = runCLI(t, "", "-w", "-j", "2", dir)
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Empty(t, res.stdout)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", readFile(t, filepath.Join(dir, "a.json")))
	assert.Equal(t, "<svg>\n  <g/>\n</svg>\n", readFile(t, filepath.Join(dir, "sub", "b.svg")))
	assert.Equal(t, "not touched", readFile(t, filepath.Join(dir, "notes.txt")))

	res = runCLI(t, "", "-l", dir)
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Empty(t, res.stdout)
}

func TestGlob(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"one/a.xml":     "<a><b/></a>",
		"two/three.xml": "<t/>",
		"two/x.json":    "[]",
	})
	res := runCLI(t, "", "-m", filepath.Join(dir, "**", "*.xml"))
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "<a><b/></a>\n<t/>\n", res.stdout)
}

func TestNoMatch(t *testing.T) {
	dir := t.TempDir()
	res := runCLI(t, "", filepath.Join(dir, "*.json"))
	assert.Equal(t, exitFail, res.code)
	assert.Contains(t, res.stderr, "no files match")
}

func TestOneBadFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"good.json": `[1]`,
		"bad.json":  `[1,]`,
	})
	res := runCLI(t, "", "-w", dir)
	assert.Equal(t, exitFail, res.code)
	assert.Contains(t, res.stderr, "bad.json")
	assert.Contains(t, res.stderr, "Invalid JSON")
	assert.Equal(t, "[\n  1\n]\n", readFile(t, filepath.Join(dir, "good.json")))
	assert.Equal(t, "[1,]", readFile(t, filepath.Join(dir, "bad.json")))
}

func TestDiff(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.json": "{\"a\":1}\n"})
	name := filepath.Join(dir, "a.json")
	res := runCLI(t, "", "-d", name)
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, strings.Join([]string{
		"--- " + name + ".orig",
		"+++ " + name,
		"@@ -1 +1,3 @@",
		`-{"a":1}`,
		"+{",
		`+  "a": 1`,
		"+}",
		"",
	}, "\n"), res.stdout)
	assert.Equal(t, "{\"a\":1}\n", readFile(t, name), "-d must not write")
}

func TestDiffContext(t *testing.T) {
	dir := writeFiles(t, map[string]string{"b.json": "[\n1\n]\n"})
	name := filepath.Join(dir, "b.json")
	res := runCLI(t, "", "-d", name)
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, strings.Join([]string{
		"--- " + name + ".orig",
		"+++ " + name,
		"@@ -1,3 +1,3 @@",
		" [",
		"-1",
		"+  1",
		" ]",
		"",
	}, "\n"), res.stdout)

	res = runCLI(t, "[\n  1\n]\n", "-d")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Empty(t, res.stdout)
}

func TestWriteKeepsCharset(t *testing.T) {
	src := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><a><b>caf\xe9</b></a>"
	dir := writeFiles(t, map[string]string{"latin.xml": src})
	name := filepath.Join(dir, "latin.xml")

	res := runCLI(t, "", "-w", name)
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t,
		"<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n<a>\n  <b>caf\xe9</b>\n</a>\n",
		readFile(t, name))
}

func TestTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	var out, errb bytes.Buffer

	code := run([]string{"-prefs", path, "-theme", "dark"}, strings.NewReader("1"), &out, &errb)
	require.Equal(t, exitOK, code, errb.String())
	p, err := prefs.Load(path)
	require.NoError(t, err)
	assert.Equal(t, prefs.Dark, p.Theme)

	code = run([]string{"-prefs", path, "-theme", "toggle"}, strings.NewReader("1"), &out, &errb)
	require.Equal(t, exitOK, code, errb.String())
	p, err = prefs.Load(path)
	require.NoError(t, err)
	assert.Equal(t, prefs.Light, p.Theme)
}

func TestBadPrefsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: sepia\n"), 0o644))
	var out, errb bytes.Buffer
	code := run([]string{"-prefs", path}, strings.NewReader("1"), &out, &errb)
	assert.Equal(t, exitFail, code)
	assert.Contains(t, errb.String(), "sepia")
}

func TestStdinKeepsCharset(t *testing.T) {
	src := "<?xml version=\"1.0\" encoding=\"windows-1252\"?><p>\x93hi\x94</p>"
	res := runCLI(t, src, "-m")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, src+"\n", res.stdout)
}
