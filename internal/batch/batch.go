// Package batch runs many file translations concurrently through a
// bounded worker pool with inter-task pacing.
package batch

import (
	"context"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MimeLyc/deepl-cli/internal/textproc"
	"github.com/MimeLyc/deepl-cli/pkg/file"
	"github.com/MimeLyc/deepl-cli/pkg/log"
)

const (
	defaultMaxWorkers = 3
	defaultDelay      = 500 * time.Millisecond
)

// Translator is the facade contract the orchestrator needs.
type Translator interface {
	Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error)
}

// Job describes one batch invocation. Consumed once, never persisted.
type Job struct {
	Files      []string
	TargetLang string
	SourceLang string
	OutputDir  string
	MaxWorkers int
	Delay      time.Duration
}

// FileStatus is the outcome of one file's translation.
type FileStatus string

const (
	StatusSuccess FileStatus = "success"
	StatusFailed  FileStatus = "failed"
)

// FileResult records the outcome for a single input file. Characters
// counts the input text, not the translation.
type FileResult struct {
	Status     FileStatus
	OutputPath string
	Error      string
	Characters int
}

// Result aggregates a finished batch.
type Result struct {
	JobID           string
	PerFile         map[string]FileResult
	TotalFiles      int
	Successful      int
	Failed          int
	TotalCharacters int
	Elapsed         time.Duration
}

// Orchestrator translates file batches through a Translator. SRT
// inputs go through the subtitle translator to keep timing lines
// intact.
type Orchestrator struct {
	translator Translator
	srt        *textproc.SubtitleTranslator
}

// New creates an Orchestrator.
func New(translator Translator) *Orchestrator {
	return &Orchestrator{
		translator: translator,
		srt:        textproc.NewSubtitleTranslator(translator),
	}
}

type completion struct {
	path   string
	result FileResult
}

// TranslateFiles runs the job. One file's failure never aborts its
// siblings; the per-file map records both outcomes. Cancelling ctx
// stops dispatching new provider calls while letting in-flight
// translations finish.
func (o *Orchestrator) TranslateFiles(ctx context.Context, job Job) (*Result, error) {
	if job.MaxWorkers <= 0 {
		job.MaxWorkers = defaultMaxWorkers
	}
	if job.Delay < 0 {
		job.Delay = defaultDelay
	}

	result := &Result{
		JobID:      uuid.NewString(),
		PerFile:    make(map[string]FileResult, len(job.Files)),
		TotalFiles: len(job.Files),
	}

	log.Info("Batch %s: translating %d files to %s with %d workers",
		result.JobID, len(job.Files), job.TargetLang, job.MaxWorkers)

	start := time.Now()

	completions := make(chan completion, len(job.Files))

	var g errgroup.Group
	g.SetLimit(job.MaxWorkers)
	for _, path := range job.Files {
		g.Go(func() error {
			completions <- completion{path: path, result: o.translateFile(ctx, path, job)}
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(completions)
	}()

	// Stats and the per-file map are only touched here, in the single
	// collecting goroutine, so no further locking is needed. Pacing
	// applies in completion order and is skipped after the final task.
	received := 0
	for c := range completions {
		result.PerFile[c.path] = c.result
		if c.result.Status == StatusSuccess {
			result.Successful++
			result.TotalCharacters += c.result.Characters
			log.Info("Translated: %s -> %s", c.path, c.result.OutputPath)
		} else {
			result.Failed++
			log.Error("Failed to translate %s: %s", c.path, c.result.Error)
		}

		received++
		if received < len(job.Files) && job.Delay > 0 {
			select {
			case <-time.After(job.Delay):
			case <-ctx.Done():
			}
		}
	}

	result.Elapsed = time.Since(start)
	log.Info("Batch %s finished: %d ok, %d failed, %d characters in %.1fs",
		result.JobID, result.Successful, result.Failed, result.TotalCharacters, result.Elapsed.Seconds())

	return result, nil
}

// translateFile handles one file. The translated text is written only
// once it is fully available, so no half-written output is left behind.
func (o *Orchestrator) translateFile(ctx context.Context, path string, job Job) FileResult {
	if err := ctx.Err(); err != nil {
		return FileResult{Status: StatusFailed, Error: "canceled before translation started"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Status: StatusFailed, Error: err.Error()}
	}
	if !utf8.Valid(data) {
		return FileResult{Status: StatusFailed, Error: "file is not valid UTF-8"}
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return FileResult{Status: StatusFailed, Error: "file is empty"}
	}

	var translated string
	if textproc.IsSRT(path) {
		translated, err = o.srt.Translate(ctx, text, job.TargetLang, job.SourceLang)
	} else {
		translated, err = o.translator.Translate(ctx, text, job.TargetLang, job.SourceLang)
	}
	if err != nil {
		return FileResult{Status: StatusFailed, Error: err.Error()}
	}

	if job.OutputDir != "" {
		if err := os.MkdirAll(job.OutputDir, 0o755); err != nil {
			return FileResult{Status: StatusFailed, Error: err.Error()}
		}
	}

	outputPath := file.OutputPath(path, job.OutputDir, job.TargetLang)
	if err := os.WriteFile(outputPath, []byte(translated), 0o644); err != nil {
		return FileResult{Status: StatusFailed, Error: err.Error()}
	}

	return FileResult{
		Status:     StatusSuccess,
		OutputPath: outputPath,
		Characters: utf8.RuneCountInString(text),
	}
}
