package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-gmi"
	"github.com/alnah/go-gmi/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// batchParams groups parameters shared across batch/file classification.
type batchParams struct {
	classifier *gmi.Classifier
	format     string
	summary    bool
	workers    int
	stdin      io.Reader
	now        func() time.Time
}

// ClassifyResult holds the outcome of classifying one input.
type ClassifyResult struct {
	File     FileToClassify
	Output   []byte // encoded listing when File.OutputPath is empty
	Lines    int
	Err      error
	Duration time.Duration
}

// classifyBatch classifies files concurrently, one Document per job.
// Results keep the order of files.
func classifyBatch(ctx context.Context, files []FileToClassify, params *batchParams) []ClassifyResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := resolveWorkers(params.workers, len(files))
	results := make([]ClassifyResult, len(files))
	jobs := make(chan int, len(files))

	var wg sync.WaitGroup
	for range concurrency {
		wg.Go(func() {
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = ClassifyResult{File: files[idx], Err: err}
					continue
				}
				results[idx] = classifyFile(ctx, files[idx], params)
			}
		})
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// classifyFile parses one input and encodes its listing.
// The listing is written to OutputPath, or kept in Output for stdout.
func classifyFile(ctx context.Context, f FileToClassify, params *batchParams) (result ClassifyResult) {
	start := params.now()
	result.File = f
	defer func() { result.Duration = params.now().Sub(start) }()

	r := params.stdin
	if !f.IsStdin() {
		file, err := os.Open(f.InputPath) // #nosec G304 -- discovered path
		if err != nil {
			result.Err = fmt.Errorf("%w: %w", ErrReadInput, err)
			return result
		}
		defer file.Close()
		r = file
	}

	doc, err := params.classifier.Parse(ctx, r)
	if err != nil {
		result.Err = err
		return result
	}
	defer doc.Release()
	result.Lines = doc.Len()

	var buf bytes.Buffer
	if err := writeListing(&buf, params.format, buildListing(f.DisplayName(), doc, params.summary)); err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrWriteOutput, err)
		return result
	}

	if f.OutputPath == "" {
		result.Output = buf.Bytes()
		return result
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		result.Err = fmt.Errorf("%w: creating output directory: %w%s", ErrWriteOutput, err, hints.ForOutputDirectory())
		return result
	}
	// #nosec G306 -- listings are meant to be readable
	if err := os.WriteFile(f.OutputPath, buf.Bytes(), filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrWriteOutput, err)
		return result
	}
	return result
}

// ResultSummary holds the count of succeeded and failed inputs.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed inputs.
func countResults(results []ClassifyResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults writes stdout listings in input order and logs the rest.
// Returns nil, the single failure, or ErrFailedFiles.
func printResults(results []ClassifyResult, format string, env *Environment) error {
	summary := countResults(results)
	multi := len(results) > 1

	printed := 0
	for _, r := range results {
		log := env.Logger.WithField("file", r.File.DisplayName())
		if r.Err != nil {
			if multi {
				log.WithError(r.Err).Error("classification failed")
			}
			continue
		}

		if r.File.OutputPath != "" {
			log.WithFields(logrus.Fields{
				"output":   r.File.OutputPath,
				"lines":    r.Lines,
				"duration": r.Duration.Round(time.Millisecond),
			}).Info("wrote listing")
			continue
		}

		if multi {
			writeSeparator(env.Stdout, format, printed, r.File.DisplayName())
		}
		printed++
		if _, err := env.Stdout.Write(r.Output); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		log.WithField("lines", r.Lines).Debug("classified")
	}

	if multi {
		env.Logger.WithFields(logrus.Fields{
			"succeeded": summary.Succeeded,
			"failed":    summary.Failed,
		}).Info("batch complete")
	}

	switch {
	case summary.Failed == 0:
		return nil
	case len(results) == 1:
		return results[0].Err
	default:
		return fmt.Errorf("%w: %d of %d", ErrFailedFiles, summary.Failed, len(results))
	}
}
