//go:build !windows

package collect

import (
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTMLFiles_SkipsNonRegularFiles(t *testing.T) {
	root := tempRoot(t)
	writeFile(t, root, "index.html")
	require.NoError(t, syscall.Mkfifo(filepath.Join(root, "pipe.html"), 0o644))

	files, err := HTMLFiles(root)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(root, "index.html")}, files)
}
