package file

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStem(t *testing.T) {
	assert.Equal(t, "document", Stem("/tmp/docs/document.txt"))
	assert.Equal(t, "archive.tar", Stem("archive.tar.gz"))
	assert.Equal(t, "noext", Stem("noext"))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("/tmp/docs", "document_ja.txt"),
		OutputPath("/tmp/docs/document.txt", "", "JA"))

	assert.Equal(t,
		filepath.Join("/out", "document_ja.txt"),
		OutputPath("/tmp/docs/document.txt", "/out", "JA"))

	assert.Equal(t,
		filepath.Join("/tmp", "movie_pt-br.srt"),
		OutputPath("/tmp/movie.srt", "", "PT-BR"))
}

func TestReplaceExt(t *testing.T) {
	assert.Equal(t, filepath.Join("/tmp", "doc.md"), ReplaceExt("/tmp/doc.txt", ".md"))
	assert.Equal(t, filepath.Join("/tmp", "doc.md"), ReplaceExt("/tmp/doc.txt", "md"))
	assert.Equal(t, filepath.Join("/tmp", "noext.md"), ReplaceExt("/tmp/noext", "md"))
	assert.Equal(t, "", ReplaceExt("", "md"))
}
