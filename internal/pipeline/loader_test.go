package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	got := Clean("Arrays  are\tfast!\n\nLists — are dynamic? (Yes), 100%.")
	assert.Equal(t, "arrays are fast! lists  are dynamic? yes, 100.", got)
}

func TestDecode_Encodings(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		enc  string
		text string
	}{
		{"utf8", []byte("caf\xc3\xa9 arrays"), "utf-8", "café arrays"},
		{"utf8 bom", []byte("\xef\xbb\xbfarrays"), "utf-8-sig", "arrays"},
		{"latin1", []byte("caf\xe9 arrays"), "latin1", "café arrays"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, enc, err := Decode(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.enc, enc)
			assert.Equal(t, tt.text, text)
		})
	}
}

func TestLoadFile_TextAndHTML(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "Array Basics.txt")
	require.NoError(t, os.WriteFile(txt, []byte("Arrays store DATA.\r\nLists are dynamic."), 0644))

	html := filepath.Join(dir, "lists.html")
	require.NoError(t, os.WriteFile(html, []byte("<html><head><title>x</title></head><body><p>Lists grow.</p><script>var a;</script></body></html>"), 0644))

	text, err := LoadFile(txt)
	require.NoError(t, err)
	assert.Equal(t, "arrays store data. lists are dynamic.", text)

	text, err = LoadFile(html)
	require.NoError(t, err)
	assert.Equal(t, "lists grow.", text)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestLoadFiles_KeepsOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"c.txt", "a.txt", "b.txt"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(name+" content."), 0644))
		paths = append(paths, path)
	}

	docs, err := LoadFiles(context.Background(), paths, 2)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "c.txt", docs[0].ID)
	assert.Equal(t, "a.txt", docs[1].ID)
	assert.Equal(t, "b.txt", docs[2].ID)
	assert.Equal(t, "a.txt content.", docs[1].Text)
}

func TestLoadFiles_Error(t *testing.T) {
	_, err := LoadFiles(context.Background(), []string{filepath.Join(t.TempDir(), "nope.txt")}, 1)
	assert.Error(t, err)
}

func TestErrUnsupportedEncoding_Wrapped(t *testing.T) {
	err := errors.Join(ErrUnsupportedEncoding)
	assert.ErrorIs(t, err, ErrUnsupportedEncoding)
}
