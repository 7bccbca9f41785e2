package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/transcript"
)

// Analyzer defines the interface for analyzing one transcript.
type Analyzer interface {
	Analyze(ctx context.Context, jobID, transcriptText, sourceLabel string) (*model.Report, error)
}

// AnalyzeJob is one transcript-file analysis job.
type AnalyzeJob struct {
	Path     string
	Analyzer Analyzer
}

// Execute loads the transcript file and runs the analysis.
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	text, err := transcript.LoadFile(j.Path)
	if err != nil {
		return &AnalyzeResult{Path: j.Path, Error: err}
	}

	label := strings.TrimSuffix(filepath.Base(j.Path), filepath.Ext(j.Path))
	report, err := j.Analyzer.Analyze(ctx, label, text, label)
	return &AnalyzeResult{
		Path:   j.Path,
		Report: report,
		Error:  err,
	}
}

// AnalyzeResult is the result of one transcript analysis job.
type AnalyzeResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the error from the analysis result.
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes multiple transcript files concurrently.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor.
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessFiles analyzes multiple transcript files concurrently.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*AnalyzeResult {
	if len(paths) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&AnalyzeJob{
			Path:     path,
			Analyzer: b.analyzer,
		})
	}

	results := pool.Wait()

	analyzeResults := make([]*AnalyzeResult, 0, len(results))
	for _, result := range results {
		if ar, ok := result.(*AnalyzeResult); ok {
			analyzeResults = append(analyzeResults, ar)
			continue
		}
		// Panic recovered inside the pool; path is unknown at this point
		analyzeResults = append(analyzeResults, &AnalyzeResult{Error: result.GetError()})
	}

	return analyzeResults
}

// ProcessList reads transcript paths from a list file and analyzes them.
func (b *BatchProcessor) ProcessList(ctx context.Context, listPath string) ([]*AnalyzeResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read transcript list: %w", err)
	}

	return b.ProcessFiles(ctx, paths), nil
}

// ReadPathsFromFile reads file paths from a list file (one per line).
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
