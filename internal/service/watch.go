// Package service runs scheduled directory translation: on each cron
// tick every untranslated file in the watched directory goes through
// the batch orchestrator.
package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/MimeLyc/deepl-cli/internal/batch"
	"github.com/MimeLyc/deepl-cli/pkg/file"
	"github.com/MimeLyc/deepl-cli/pkg/log"
)

// watchedExtensions are the file types picked up from the watched
// directory.
var watchedExtensions = map[string]struct{}{
	".txt": {},
	".md":  {},
	".srt": {},
}

// WatchService schedules batch translations of a directory.
type WatchService struct {
	dir          string
	cronExpr     string
	cron         *cron.Cron
	orchestrator *batch.Orchestrator

	targetLang string
	sourceLang string
	outputDir  string
	maxWorkers int
	delay      time.Duration
}

// Config carries the watch parameters.
type Config struct {
	Dir        string
	CronExpr   string
	TargetLang string
	SourceLang string
	OutputDir  string
	MaxWorkers int
	Delay      time.Duration
}

// NewWatchService creates a WatchService using the given cron runner.
func NewWatchService(cfg Config, c *cron.Cron, orchestrator *batch.Orchestrator) *WatchService {
	return &WatchService{
		dir:          cfg.Dir,
		cronExpr:     cfg.CronExpr,
		cron:         c,
		orchestrator: orchestrator,
		targetLang:   cfg.TargetLang,
		sourceLang:   cfg.SourceLang,
		outputDir:    cfg.OutputDir,
		maxWorkers:   cfg.MaxWorkers,
		delay:        cfg.Delay,
	}
}

var singleflightGroup singleflight.Group

// Schedule registers the cron job. A run still in flight when the next
// tick arrives is not started twice.
func (s *WatchService) Schedule(ctx context.Context) error {
	log.Info("Watching %s on schedule %q", s.dir, s.cronExpr)

	runFunc := func() {
		_, _, _ = singleflightGroup.Do("run:"+s.dir, func() (any, error) {
			if err := s.run(ctx); err != nil {
				log.Error("Watch run failed for %s: %v", s.dir, err)
			}
			return nil, nil
		})
	}
	_, err := s.cron.AddFunc(s.cronExpr, runFunc)
	return err
}

// Run starts the scheduler and blocks until ctx is canceled. In-flight
// translations are allowed to finish before shutdown returns.
func (s *WatchService) Run(ctx context.Context) {
	s.cron.Start()
	<-ctx.Done()
	stopped := s.cron.Stop()
	<-stopped.Done()
}

func (s *WatchService) run(ctx context.Context) error {
	pending, err := s.findPending()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		log.Debug("Nothing to translate in %s", s.dir)
		return nil
	}
	log.Info("Found %d files to translate in %s", len(pending), s.dir)

	result, err := s.orchestrator.TranslateFiles(ctx, batch.Job{
		Files:      pending,
		TargetLang: s.targetLang,
		SourceLang: s.sourceLang,
		OutputDir:  s.outputDir,
		MaxWorkers: s.maxWorkers,
		Delay:      s.delay,
	})
	if err != nil {
		return err
	}
	if result.Failed > 0 {
		log.Warn("Watch run: %d of %d files failed", result.Failed, result.TotalFiles)
	}
	return nil
}

// findPending lists watchable files that have no translated output yet.
// Already-translated outputs are recognized by the {stem}_{lang} suffix
// and skipped as inputs too.
func (s *WatchService) findPending() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	suffix := "_" + strings.ToLower(s.targetLang)

	var pending []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, ok := watchedExtensions[strings.ToLower(filepath.Ext(name))]; !ok {
			continue
		}
		path := filepath.Join(s.dir, name)
		if strings.HasSuffix(file.Stem(path), suffix) {
			continue
		}
		if _, err := os.Stat(file.OutputPath(path, s.outputDir, s.targetLang)); err == nil {
			continue
		}
		pending = append(pending, path)
	}
	return pending, nil
}
