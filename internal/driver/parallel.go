package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"ownlint/internal/decl"
)

// ListDocuments returns the sorted list of declaration documents in a
// directory tree.
func ListDocuments(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if decl.IsDocument(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CheckDir validates every declaration document under dir, up to opts.Jobs
// documents in parallel. Each document run is independent (the validator is
// a pure function of its input), so no coordination beyond the worker limit
// is needed. Results come back in path order regardless of completion order.
func CheckDir(ctx context.Context, dir string, opts Options) ([]DocumentResult, error) {
	files, err := ListDocuments(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no declaration documents (*.yaml, *.yml, *.toml) under %s", dir)
	}

	for _, path := range files {
		emit(opts.Progress, Event{Doc: path, Stage: StageLoad, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]DocumentResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := CheckDocument(path, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CheckPath validates a single document or a directory of documents.
func CheckPath(ctx context.Context, path string, opts Options) ([]DocumentResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return CheckDir(ctx, path, opts)
	}
	res, err := CheckDocument(path, opts)
	if err != nil {
		return nil, err
	}
	return []DocumentResult{res}, nil
}
