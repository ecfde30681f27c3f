package converter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"pnguncrush/cgbipng"
	"pnguncrush/core"
	"pnguncrush/db"
	"pnguncrush/logging"
	"pnguncrush/preview"
)

// FileResult is the outcome of running one file through the engine.
type FileResult struct {
	CorrelationID string
	SourcePath    string
	OutputPath    string
	Width         int
	Height        int
	Crushed       bool
	InputBytes    int64
	OutputBytes   int64
	Duration      time.Duration
	Err           error
}

// Status maps the result onto a history status.
func (r *FileResult) Status() string {
	switch {
	case r.Err != nil:
		return db.StatusError
	case !r.Crushed:
		return db.StatusSkipped
	default:
		return db.StatusConverted
	}
}

// Processor converts files according to the configuration, logging each step
// and optionally recording outcomes in the history store.
type Processor struct {
	config *core.Config
	logger *logging.Logger
	repo   *db.Repository
}

// NewProcessor creates a Processor. repo may be nil when history is disabled.
func NewProcessor(cfg *core.Config, logger *logging.Logger, repo *db.Repository) *Processor {
	return &Processor{config: cfg, logger: logger, repo: repo}
}

// ProcessFile converts one file and returns its result. Conversion failures
// are reported inside the result rather than aborting the batch.
func (p *Processor) ProcessFile(ctx context.Context, sourcePath string) *FileResult {
	start := time.Now()
	result := &FileResult{
		CorrelationID: newCorrelationID(),
		SourcePath:    sourcePath,
	}
	log := p.logger.With(
		zap.String("correlation_id", result.CorrelationID),
		zap.String("source", sourcePath),
	)

	result.Err = p.convertFile(ctx, result, log)
	result.Duration = time.Since(start)

	switch {
	case result.Err != nil:
		log.Error("Conversion failed",
			zap.Error(result.Err),
			zap.Duration("duration", result.Duration))
	case !result.Crushed:
		log.Info("Already standard PNG, skipped",
			zap.Duration("duration", result.Duration))
	default:
		log.Info("Converted crushed PNG",
			zap.String("output", result.OutputPath),
			zap.Int("width", result.Width),
			zap.Int("height", result.Height),
			zap.Int64("input_bytes", result.InputBytes),
			zap.Int64("output_bytes", result.OutputBytes),
			zap.Duration("duration", result.Duration))
	}

	p.record(ctx, result)
	return result
}

// convertFile does the read / convert / write work for one file, filling the
// result in as it goes.
func (p *Processor) convertFile(ctx context.Context, result *FileResult, log *logging.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(result.SourcePath)
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	result.InputBytes = info.Size()
	if result.InputBytes > p.config.MaxFileSize {
		return fmt.Errorf("input is %d bytes, over the %d byte limit",
			result.InputBytes, p.config.MaxFileSize)
	}

	data, err := os.ReadFile(result.SourcePath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	converted, err := cgbipng.Convert(data)
	if err != nil {
		return err
	}
	result.Width = converted.Width
	result.Height = converted.Height
	result.Crushed = converted.Crushed
	if !converted.Crushed {
		return nil
	}

	outputPath := p.config.OutputPath(result.SourcePath)
	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, converted.Data, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	result.OutputPath = outputPath
	result.OutputBytes = int64(len(converted.Data))

	if p.config.Thumbnails {
		if err := p.writeThumbnail(outputPath, converted.Data, log); err != nil {
			// A missing preview never fails the conversion itself.
			log.Warn("Thumbnail generation failed", zap.Error(err))
		}
	}
	return nil
}

func (p *Processor) writeThumbnail(outputPath string, data []byte, log *logging.Logger) error {
	thumb, err := preview.Thumbnail(data, p.config.ThumbnailSize)
	if err != nil {
		return err
	}
	thumbPath := preview.ThumbnailPath(outputPath)
	if err := os.WriteFile(thumbPath, thumb, 0644); err != nil {
		return fmt.Errorf("writing thumbnail: %w", err)
	}
	log.Debug("Wrote thumbnail", zap.String("path", thumbPath))
	return nil
}

// record stores the result in the history store when one is configured.
func (p *Processor) record(ctx context.Context, result *FileResult) {
	if p.repo == nil {
		return
	}

	rec := &db.ConversionRecord{
		CorrelationID: result.CorrelationID,
		SourcePath:    result.SourcePath,
		OutputPath:    result.OutputPath,
		Width:         result.Width,
		Height:        result.Height,
		Crushed:       result.Crushed,
		InputBytes:    result.InputBytes,
		OutputBytes:   result.OutputBytes,
		DurationMS:    result.Duration.Milliseconds(),
		Status:        result.Status(),
	}
	if result.Err != nil {
		rec.ErrorMessage = result.Err.Error()
	}
	if result.InputBytes > 0 && result.Err == nil {
		if sum, err := core.SHA256File(result.SourcePath); err == nil {
			rec.InputSHA256 = sum
		}
	}
	if result.OutputPath != "" {
		if sum, err := core.SHA256File(result.OutputPath); err == nil {
			rec.OutputSHA256 = sum
		}
	}

	if err := p.repo.InsertConversion(ctx, rec); err != nil {
		p.logger.Warn("Failed to record conversion history",
			zap.String("correlation_id", result.CorrelationID),
			zap.Error(err))
	}
}

// ProcessDir scans root and converts every PNG found, running up to
// MaxConcurrent conversions in parallel. Results come back in scan order.
func (p *Processor) ProcessDir(ctx context.Context, root string) ([]*FileResult, error) {
	files, err := ScanPNGFiles(root)
	if err != nil {
		return nil, err
	}
	return p.ProcessFiles(ctx, files), nil
}

// ProcessFiles converts the given files with a bounded worker pool.
func (p *Processor) ProcessFiles(ctx context.Context, files []string) []*FileResult {
	if len(files) == 0 {
		return nil
	}

	workers := p.config.MaxConcurrent
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	results := make([]*FileResult, len(files))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.ProcessFile(ctx, files[i])
			}
		}()
	}

	for i := range files {
		select {
		case <-ctx.Done():
			// Unprocessed slots stay nil; callers see only what ran.
			close(jobs)
			wg.Wait()
			return compactResults(results)
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	return compactResults(results)
}

func compactResults(results []*FileResult) []*FileResult {
	out := results[:0]
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
