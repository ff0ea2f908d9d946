package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTranslator struct {
	mu        sync.Mutex
	calls     int
	failTexts map[string]bool
}

func (f *fakeTranslator) Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.failTexts[text] {
		return "", errors.New("provider rejected text")
	}
	return "translated:" + text, nil
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTranslateFiles_AggregatesCharacterCounts(t *testing.T) {
	dir := t.TempDir()
	a := writeFixture(t, dir, "a.txt", "hello world")   // 11 chars
	b := writeFixture(t, dir, "b.txt", "hello worlds")  // 12 chars

	trans := &fakeTranslator{}
	result, err := New(trans).TranslateFiles(context.Background(), Job{
		Files:      []string{a, b},
		TargetLang: "JA",
		MaxWorkers: 1,
		Delay:      time.Millisecond,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalFiles)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 23, result.TotalCharacters)
	assert.NotEmpty(t, result.JobID)
	assert.GreaterOrEqual(t, result.Elapsed, time.Duration(0))
}

func TestTranslateFiles_WritesOutputsNextToInputs(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "doc.txt", "content here")

	trans := &fakeTranslator{}
	result, err := New(trans).TranslateFiles(context.Background(), Job{
		Files:      []string{path},
		TargetLang: "JA",
		Delay:      time.Millisecond,
	})

	require.NoError(t, err)
	fr := result.PerFile[path]
	assert.Equal(t, StatusSuccess, fr.Status)
	assert.Equal(t, filepath.Join(dir, "doc_ja.txt"), fr.OutputPath)

	data, err := os.ReadFile(fr.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "translated:content here", string(data))
}

func TestTranslateFiles_OutputDirCreated(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "doc.txt", "content")
	outDir := filepath.Join(dir, "out", "nested")

	trans := &fakeTranslator{}
	result, err := New(trans).TranslateFiles(context.Background(), Job{
		Files:      []string{path},
		TargetLang: "DE",
		OutputDir:  outDir,
		Delay:      time.Millisecond,
	})

	require.NoError(t, err)
	fr := result.PerFile[path]
	assert.Equal(t, filepath.Join(outDir, "doc_de.txt"), fr.OutputPath)
	_, statErr := os.Stat(fr.OutputPath)
	assert.NoError(t, statErr)
}

func TestTranslateFiles_OneFailureDoesNotAbortSiblings(t *testing.T) {
	dir := t.TempDir()
	good := writeFixture(t, dir, "good.txt", "fine")
	bad := writeFixture(t, dir, "bad.txt", "poison")
	missing := filepath.Join(dir, "missing.txt")

	trans := &fakeTranslator{failTexts: map[string]bool{"poison": true}}
	result, err := New(trans).TranslateFiles(context.Background(), Job{
		Files:      []string{good, bad, missing},
		TargetLang: "FR",
		MaxWorkers: 2,
		Delay:      time.Millisecond,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalFiles)
	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, 4, result.TotalCharacters, "only successful input characters count")

	assert.Equal(t, StatusSuccess, result.PerFile[good].Status)
	assert.Equal(t, StatusFailed, result.PerFile[bad].Status)
	assert.NotEmpty(t, result.PerFile[bad].Error)
	assert.Equal(t, StatusFailed, result.PerFile[missing].Status)

	// The failed translation must leave no partial output behind.
	_, statErr := os.Stat(filepath.Join(dir, "bad_fr.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestTranslateFiles_EmptyFileFailsTask(t *testing.T) {
	dir := t.TempDir()
	empty := writeFixture(t, dir, "empty.txt", "  \n ")

	trans := &fakeTranslator{}
	result, err := New(trans).TranslateFiles(context.Background(), Job{
		Files:      []string{empty},
		TargetLang: "JA",
		Delay:      time.Millisecond,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, result.PerFile[empty].Error, "empty")
	assert.Zero(t, trans.calls, "empty files never reach the provider")
}

func TestTranslateFiles_CanceledContextStopsNewWork(t *testing.T) {
	dir := t.TempDir()
	files := make([]string, 4)
	for i := range files {
		files[i] = writeFixture(t, dir, "f"+string(rune('a'+i))+".txt", "text")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	trans := &fakeTranslator{}
	result, err := New(trans).TranslateFiles(ctx, Job{
		Files:      files,
		TargetLang: "JA",
		MaxWorkers: 1,
		Delay:      time.Millisecond,
	})

	require.NoError(t, err)
	assert.Equal(t, 4, result.Failed)
	assert.Zero(t, trans.calls, "no provider calls after cancellation")
	for _, fr := range result.PerFile {
		assert.Contains(t, fr.Error, "canceled")
	}
}

func TestTranslateFiles_SRTKeepsTimingLines(t *testing.T) {
	dir := t.TempDir()
	srt := "1\n00:00:01,000 --> 00:00:02,000\nHello\n\n2\n00:00:03,000 --> 00:00:04,000\nWorld\n"
	path := writeFixture(t, dir, "movie.srt", srt)

	trans := &fakeTranslator{}
	result, err := New(trans).TranslateFiles(context.Background(), Job{
		Files:      []string{path},
		TargetLang: "JA",
		Delay:      time.Millisecond,
	})

	require.NoError(t, err)
	fr := result.PerFile[path]
	require.Equal(t, StatusSuccess, fr.Status)

	data, err := os.ReadFile(fr.OutputPath)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "00:00:01,000 --> 00:00:02,000")
	assert.Contains(t, out, "translated:Hello")
	assert.True(t, strings.HasSuffix(out, "\n"))
}
