package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/docrag/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestFromFile_PlainText(t *testing.T) {
	path := writeTempFile(t, "note.txt", "Patient presented with chest pain.\n")

	text, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Patient presented with chest pain.\n", text)
}

func TestFromFile_Markdown(t *testing.T) {
	path := writeTempFile(t, "summary.md", "# Discharge Summary\n\nStable at discharge.")

	text, err := FromFile(path)
	require.NoError(t, err)
	assert.Contains(t, text, "Stable at discharge.")
}

func TestFromFile_EmptyFile(t *testing.T) {
	path := writeTempFile(t, "empty.txt", "   \n\t\n")

	_, err := FromFile(path)
	assert.ErrorIs(t, err, core.ErrEmptyDocument)
}

func TestFromFile_UnsupportedFormat(t *testing.T) {
	path := writeTempFile(t, "image.png", "not really an image")

	_, err := FromFile(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFromFile_MissingFile(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestFromFile_BadPDF(t *testing.T) {
	path := writeTempFile(t, "broken.pdf", "this is not a pdf")

	_, err := FromFile(path)
	assert.Error(t, err)
}
