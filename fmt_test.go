// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numline

import (
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// goFiles returns the .go files of the module rooted at the current
// directory. Directories whose names start with "_" or "." are
// ignored, as the go tool ignores them.
func goFiles(t *testing.T) []string {
	var files []string
	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if n := d.Name(); path != "." && (strings.HasPrefix(n, "_") || strings.HasPrefix(n, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".go" {
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

// TestGofmt tests that all files are formatted.
func TestGofmt(t *testing.T) {
	gofmt, err := exec.LookPath("gofmt")
	if err != nil {
		t.Skip("gofmt not found")
	}
	files := goFiles(t)
	require.NotEmpty(t, files)

	out, err := exec.Command(gofmt, append([]string{"-l"}, files...)...).CombinedOutput()
	require.NoError(t, err, "%s", out)
	assert.Empty(t, strings.Fields(string(out)), "files are not gofmt clean; please run gofmt")
}
