package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MimeLyc/deepl-cli/internal/batch"
)

type echoTranslator struct{}

func (echoTranslator) Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error) {
	return "T:" + text, nil
}

func newTestService(t *testing.T, dir string) *WatchService {
	t.Helper()
	return NewWatchService(Config{
		Dir:        dir,
		CronExpr:   "* * * * *",
		TargetLang: "JA",
		Delay:      time.Millisecond,
	}, nil, batch.New(echoTranslator{}))
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("some text"), 0o644))
	return path
}

func TestFindPending_FiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	txt := touch(t, dir, "notes.txt")
	srt := touch(t, dir, "movie.srt")
	touch(t, dir, "photo.jpg")
	touch(t, dir, "binary.bin")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755))

	pending, err := newTestService(t, dir).findPending()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{txt, srt}, pending)
}

func TestFindPending_SkipsTranslatedOutputs(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "notes_ja.txt")

	pending, err := newTestService(t, dir).findPending()
	require.NoError(t, err)
	assert.Empty(t, pending, "translated outputs are never re-translated")
}

func TestFindPending_SkipsInputsWithExistingOutput(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "done.md")
	touch(t, dir, "done_ja.md")
	fresh := touch(t, dir, "fresh.md")

	pending, err := newTestService(t, dir).findPending()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{fresh}, pending)
}

func TestRun_TranslatesPendingFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "notes.txt")

	svc := newTestService(t, dir)
	require.NoError(t, svc.run(context.Background()))

	data, err := os.ReadFile(filepath.Join(dir, "notes_ja.txt"))
	require.NoError(t, err)
	assert.Equal(t, "T:some text", string(data))

	// A second run has nothing left to do.
	pending, err := svc.findPending()
	require.NoError(t, err)
	assert.Empty(t, pending)
}
