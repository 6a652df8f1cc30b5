// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/pdiddy/extmirror/pkg/types"
)

// tempDir returns a symlink-free temporary directory.
func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func TestRoots_InvalidInput(t *testing.T) {
	dir := tempDir(t)
	file := filepath.Join(dir, "plain.m")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	for name, input := range map[string]string{
		"missing":       filepath.Join(dir, "nope"),
		"not directory": file,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Roots(input, "", "_txt")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInputRoot))
			assert.Contains(t, err.Error(), input)
		})
	}
}

func TestRoots_DefaultOutput(t *testing.T) {
	dir := tempDir(t)
	src := filepath.Join(dir, "src")
	require.NoError(t, os.Mkdir(src, 0o755))

	roots, err := Roots(src+string(filepath.Separator), "", "_txt")
	require.NoError(t, err)
	assert.Equal(t, types.Roots{Input: src, Output: src + "_txt"}, roots)

	_, err = os.Stat(roots.Output)
	assert.True(t, os.IsNotExist(err), "resolving must not create the output root")
}

func TestRoots_RelativePaths(t *testing.T) {
	dir := tempDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "work", "src"), 0o755))
	t.Chdir(filepath.Join(dir, "work"))

	roots, err := Roots("src", filepath.Join("..", "out", "nested"), "_txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "work", "src"), roots.Input)
	assert.Equal(t, filepath.Join(dir, "out", "nested"), roots.Output)
}

func TestRoots_Symlinks(t *testing.T) {
	dir := tempDir(t)
	target := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(target, 0o755))
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	roots, err := Roots(link, filepath.Join(link, "missing", "out"), "_txt")
	require.NoError(t, err)
	assert.Equal(t, target, roots.Input)
	assert.Equal(t, filepath.Join(target, "missing", "out"), roots.Output)
}

func TestRoots_SameRoot(t *testing.T) {
	dir := tempDir(t)
	roots, err := Roots(dir, filepath.Join(dir, "."), "_txt")
	require.NoError(t, err)
	assert.Equal(t, types.Roots{Input: dir, Output: dir}, roots)
	assert.False(t, OutputNested(roots))
}

func TestOutputNested(t *testing.T) {
	tests := []struct {
		name  string
		roots types.Roots
		want  bool
	}{
		{"sibling", types.Roots{Input: "/a/src", Output: "/a/src_txt"}, false},
		{"child", types.Roots{Input: "/a/src", Output: "/a/src/out"}, true},
		{"deep child", types.Roots{Input: "/a/src", Output: "/a/src/x/y"}, true},
		{"parent", types.Roots{Input: "/a/src", Output: "/a"}, false},
		{"dotted sibling name", types.Roots{Input: "/a/src", Output: "/a/src/..out"}, true},
		{"same", types.Roots{Input: "/a/src", Output: "/a/src"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputNested(tt.roots))
		})
	}
}
