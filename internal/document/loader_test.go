package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_TextPages(t *testing.T) {
	path := writeFile(t, "regs.txt", "Article 1\nScope.\fArticle 2\nPoints.\fArticle 3")

	doc, err := Load(path)
	require.NoError(t, err)

	require.Len(t, doc.Pages, 3)
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, 1, doc.Pages[0].Number)
	assert.Equal(t, "Article 1\nScope.", doc.Pages[0].Text)
	assert.Equal(t, 3, doc.Pages[2].Number)
	assert.Equal(t, "Article 3", doc.Pages[2].Text)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "fia2026.pdf"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheck_Directory(t *testing.T) {
	assert.ErrorIs(t, Check(t.TempDir()), ErrNotFound)
}

func TestLoad_InvalidUTF8(t *testing.T) {
	path := writeFile(t, "broken.txt", "ok\f\xff\xfe")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrContent)
}

func TestLoad_BadPDF(t *testing.T) {
	path := writeFile(t, "regs.pdf", "this is not a pdf")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrContent)
}

func TestFingerprint(t *testing.T) {
	a := writeFile(t, "a.txt", "Article 6.4")
	b := writeFile(t, "b.txt", "Article 6.5")

	fa, err := Fingerprint(a)
	require.NoError(t, err)
	fa2, err := Fingerprint(a)
	require.NoError(t, err)
	fb, err := Fingerprint(b)
	require.NoError(t, err)

	assert.Len(t, fa, 64)
	assert.Equal(t, fa, fa2)
	assert.NotEqual(t, fa, fb)
}

func TestSplitPages_SinglePage(t *testing.T) {
	pages, err := SplitPages("no breaks here")
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, 1, pages[0].Number)
}
