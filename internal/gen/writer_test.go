package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFilesAndStale(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	file := GeneratedFile{Dir: dir, Filename: DefaultFilename, Content: []byte("package p\n")}

	stale, err := Stale(file)
	require.NoError(t, err)
	assert.True(t, stale, "missing file is stale")

	require.NoError(t, WriteFiles([]GeneratedFile{file}))

	got, err := os.ReadFile(filepath.Join(dir, DefaultFilename))
	require.NoError(t, err)
	assert.Equal(t, "package p\n", string(got))

	stale, err = Stale(file)
	require.NoError(t, err)
	assert.False(t, stale)

	file.Content = []byte("package q\n")

	stale, err = Stale(file)
	require.NoError(t, err)
	assert.True(t, stale)
}

func TestStale_Unreadable(t *testing.T) {
	dir := t.TempDir()

	// A directory in place of the file cannot be read.
	require.NoError(t, os.Mkdir(filepath.Join(dir, DefaultFilename), 0o755))

	_, err := Stale(GeneratedFile{Dir: dir, Filename: DefaultFilename})
	require.Error(t, err)
}

func TestWriteDebugUnformatted(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, writeDebugUnformatted(dir, DefaultFilename, []byte("package")))

	got, err := os.ReadFile(filepath.Join(dir, DefaultFilename+".unformatted"))
	require.NoError(t, err)
	assert.Equal(t, "package", string(got))
}
