package collect

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/seekinject/internal/foundation/errors"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("<html></html>"), 0o644))
}

func tempRoot(t *testing.T) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return root
}

func TestHTMLFiles_RecursiveAndOrdered(t *testing.T) {
	root := tempRoot(t)
	for _, rel := range []string{
		"index.html",
		"sitemap.html",
		"about/index.html",
		"blog/post/index.html",
		"blog/a.html",
		"assets/app.js",
		"assets/style.css",
		"notes.htm",
		"UPPER.HTML",
	} {
		writeFile(t, root, rel)
	}
	// A directory named like a page must not be reported.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "weird.html"), 0o755))

	files, err := HTMLFiles(root)
	require.NoError(t, err)

	var rels []string
	for _, f := range files {
		require.True(t, filepath.IsAbs(f), f)
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}
	require.Equal(t, []string{
		"about/index.html",
		"blog/a.html",
		"blog/post/index.html",
		"index.html",
		"sitemap.html",
	}, rels)

	again, err := HTMLFiles(root)
	require.NoError(t, err)
	require.Equal(t, files, again, "traversal order must be deterministic")
}

func TestHTMLFiles_EmptyTree(t *testing.T) {
	files, err := HTMLFiles(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestHTMLFiles_MissingRoot(t *testing.T) {
	_, err := HTMLFiles(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryNotFound))
	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	require.True(t, ce.IsFatal())
}

func TestHTMLFiles_RootIsFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.html")

	_, err := HTMLFiles(filepath.Join(root, "index.html"))
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestHTMLFiles_UnreadableSubdirectoryAborts(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}
	root := t.TempDir()
	writeFile(t, root, "index.html")
	writeFile(t, root, "private/index.html")
	locked := filepath.Join(root, "private")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	files, err := HTMLFiles(root)
	require.Error(t, err)
	require.Nil(t, files)
	require.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestHTMLFiles_SymlinkedRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	build := tempRoot(t)
	writeFile(t, build, "index.html")
	writeFile(t, build, "docs/guide.html")
	public := filepath.Join(tempRoot(t), "public")
	require.NoError(t, os.Symlink(build, public))

	files, err := HTMLFiles(public)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(build, "docs", "guide.html"),
		filepath.Join(build, "index.html"),
	}, files)

	resolved, err := ResolveRoot(public)
	require.NoError(t, err)
	require.Equal(t, build, resolved)
}

func TestHTMLFiles_SymlinkedPage(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	root := tempRoot(t)
	writeFile(t, root, "real.html")
	require.NoError(t, os.Symlink(filepath.Join(root, "real.html"), filepath.Join(root, "alias.html")))
	require.NoError(t, os.Symlink(filepath.Join(root, "gone.html"), filepath.Join(root, "dangling.html")))
	require.NoError(t, os.Symlink(filepath.Join(root, "sub"), filepath.Join(root, "dir.html")))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))

	files, err := HTMLFiles(root)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "alias.html"),
		filepath.Join(root, "dangling.html"),
		filepath.Join(root, "real.html"),
	}, files)
}
