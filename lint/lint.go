// Package lint is the public entry point for running condlint: it loads the
// configuration, builds the schema and drives the engine over files and
// directories.
package lint

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/cfglab/condlint/internal"
	"github.com/cfglab/condlint/internal/schema"
	tt "github.com/cfglab/condlint/internal/types"
	"github.com/cfglab/condlint/scanner"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// DefaultConfigFileName is where New looks for configuration when no path
// is given.
const DefaultConfigFileName = ".condlint.yaml"

// LintEngine is the engine surface the process helpers need.
type LintEngine interface {
	Run(filePath string) ([]tt.Issue, error)
	RunSource(source []byte) ([]tt.Issue, error)
	IgnoreRule(rule string)
	IgnorePath(path string)
}

// New builds an engine from the configuration file at configurationPath.
// An empty path falls back to DefaultConfigFileName when it exists, or to
// the built-in schema (well-known names only) when it does not.
func New(configurationPath string) (*internal.Engine, error) {
	if configurationPath == "" {
		if _, err := os.Stat(DefaultConfigFileName); err == nil {
			configurationPath = DefaultConfigFileName
		} else {
			return internal.NewEngine(schema.New(), nil), nil
		}
	}

	config, err := ParseConfigurationFile(configurationPath)
	if err != nil {
		return nil, err
	}

	sch, err := config.BuildSchema()
	if err != nil {
		return nil, fmt.Errorf("invalid `expected` section in %s: %w", configurationPath, err)
	}

	return internal.NewEngine(sch, config.Rules), nil
}

// ProcessSources lints in-memory sources in order.
func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	sources [][]byte,
	processor func(LintEngine, []byte) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for i, source := range sources {
		issues, err := processor(engine, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

// ProcessFiles lints every given path (file or directory) and returns the
// merged issues sorted by position.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	internal.SortIssues(allIssues)
	return allIssues, nil
}

// ProcessPath lints one file, or every matching file under one directory.
// Directory entries are linted on a bounded pool of worker goroutines;
// each file's issues keep their internal order and the caller re-sorts the
// merged result, so the output is stable regardless of scheduling.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !internal.HasDesiredExtension(path) {
			return nil, nil
		}
		return processor(engine, path)
	}

	found, err := scanner.New(path).Scan()
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", path, err)
	}
	files := make([]string, 0, len(found))
	for _, f := range found {
		files = append(files, f.Path)
	}

	resultChan := make(chan []tt.Issue, len(files))
	errorChan := make(chan error, len(files))

	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			sem <- struct{}{}
			go func(fp string) {
				defer func() { <-sem }()

				fileIssues, err := processor(engine, fp)
				if err != nil {
					if logger != nil {
						logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
					}
					errorChan <- err
					resultChan <- nil
				} else {
					resultChan <- fileIssues
					errorChan <- nil
				}
				bar.Add(1)
			}(filePath)
		}
	}

	var issues []tt.Issue
	for range files {
		if err := <-errorChan; err != nil {
			continue
		}
		if result := <-resultChan; result != nil {
			issues = append(issues, result...)
		}
	}

	fmt.Println()
	return issues, nil
}

// ProcessFile lints a single file through the engine.
func ProcessFile(engine LintEngine, filePath string) ([]tt.Issue, error) {
	return engine.Run(filePath)
}

// ProcessSource lints a single in-memory source through the engine.
func ProcessSource(engine LintEngine, source []byte) ([]tt.Issue, error) {
	return engine.RunSource(source)
}
