package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Document is one resume submitted to a batch. When Err is set the document
// failed before text extraction and is reported as-is. When Load is set it is
// called on a worker to produce the text, so extraction shares the batch's
// concurrency limit.
type Document struct {
	ID   string
	Text string
	Err  error
	Load func() (string, error)
}

// ProgressEvent reports that one batch item has finished.
type ProgressEvent struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Done  int    `json:"done"`
	Total int    `json:"total"`
	Err   error  `json:"-"`
}

// ProgressCallback is called once per finished batch item. Calls are serialized.
type ProgressCallback func(event ProgressEvent)

// BatchOptions configures a single BatchMatch call.
type BatchOptions struct {
	OnProgress ProgressCallback
}

// BatchMatch scores every document against jobText. Documents are processed
// concurrently up to the engine's concurrency limit; the result has one item
// per document in submission order. A failing document never affects the
// others. When ctx is cancelled, documents not yet started report ctx.Err().
func (e *Engine) BatchMatch(ctx context.Context, jobText string, docs []Document, opts BatchOptions) types.BatchResult {
	results := make(types.BatchResult, len(docs))
	if len(docs) == 0 {
		return results
	}

	started := time.Now()
	jobSkills := e.ExtractSkills(jobText)

	var (
		mu   sync.Mutex
		done int
	)
	report := func(item types.BatchItem) {
		if opts.OnProgress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		done++
		opts.OnProgress(ProgressEvent{
			Index: item.Index,
			ID:    item.ID,
			Done:  done,
			Total: len(docs),
			Err:   item.Err,
		})
	}

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i, doc := range docs {
		g.Go(func() error {
			item := e.matchOne(ctx, i, doc, jobSkills)
			results[i] = item
			report(item)
			return nil
		})
	}
	_ = g.Wait()

	e.logger.Info("batch match finished",
		zap.Int("documents", len(docs)),
		zap.Int("succeeded", results.Succeeded()),
		zap.Int("job_skills", jobSkills.Len()),
		zap.Duration("elapsed", time.Since(started)))
	return results
}

// matchOne never panics; a panic while scoring becomes the item's error.
func (e *Engine) matchOne(ctx context.Context, index int, doc Document, jobSkills *types.SkillSet) (item types.BatchItem) {
	item = types.BatchItem{Index: index, ID: doc.ID}
	defer func() {
		if r := recover(); r != nil {
			item.Result = nil
			item.Err = &PanicError{ID: doc.ID, Value: r}
			e.logger.Error("batch item panicked", zap.String("id", doc.ID), zap.Any("panic", r))
		}
	}()

	if err := ctx.Err(); err != nil {
		item.Err = err
		return item
	}
	if doc.Err != nil {
		item.Err = doc.Err
		return item
	}

	text := doc.Text
	if doc.Load != nil {
		loaded, err := doc.Load()
		if err != nil {
			item.Err = err
			return item
		}
		text = loaded
	}
	if strings.TrimSpace(text) == "" {
		item.Err = &ingestion.ExtractionError{Source: doc.ID, Reason: "no text content"}
		return item
	}

	result, err := ranking.Match(e.ExtractSkills(text), jobSkills)
	if err != nil {
		item.Err = fmt.Errorf("scoring %s: %w", doc.ID, err)
		return item
	}
	item.Result = result
	return item
}
