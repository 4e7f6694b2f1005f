package driver

import (
	"fmt"
	"os"

	"ownlint/internal/decl"
	"ownlint/internal/diag"
	"ownlint/internal/ownership"
)

// Options configure a driver run.
type Options struct {
	// MaxDiagnostics caps the bag of every document; 0 means 100.
	MaxDiagnostics int
	// MaxValueDepth is forwarded to ownership.Check.
	MaxValueDepth int
	// Jobs bounds directory-run parallelism; 0 means GOMAXPROCS.
	Jobs int
	// Cache, when set, reuses parsed declaration sets across runs.
	Cache *DiskCache
	// Progress receives per-document events; nil disables reporting.
	Progress Sink
}

const defaultMaxDiagnostics = 100

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return defaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

// DocumentResult is the outcome of validating one declaration document.
type DocumentResult struct {
	Path  string
	Decls int
	Bag   *diag.Bag
}

// CheckDocument loads and validates a single declaration document.
// Load failures and internal invariant violations are errors; everything
// the validator finds lands in the result's bag.
func CheckDocument(path string, opts Options) (DocumentResult, error) {
	emit(opts.Progress, Event{Doc: path, Stage: StageLoad, Status: StatusWorking})
	decls, err := loadDocument(path, opts.Cache)
	if err != nil {
		emit(opts.Progress, Event{Doc: path, Stage: StageLoad, Status: StatusError})
		return DocumentResult{Path: path}, err
	}

	emit(opts.Progress, Event{Doc: path, Stage: StageCheck, Status: StatusWorking})
	bag := diag.NewBag(opts.maxDiagnostics())
	if _, err := ownership.Check(decls, ownership.Options{
		Reporter:      diag.BagReporter{Bag: bag},
		MaxValueDepth: opts.MaxValueDepth,
	}); err != nil {
		emit(opts.Progress, Event{Doc: path, Stage: StageCheck, Status: StatusError})
		return DocumentResult{Path: path}, fmt.Errorf("%s: %w", path, err)
	}
	bag.Sort()

	emit(opts.Progress, Event{Doc: path, Stage: StageCheck, Status: StatusDone})
	return DocumentResult{Path: path, Decls: len(decls), Bag: bag}, nil
}

// loadDocument reads a declaration document, consulting the disk cache when
// one is configured. The cache key is the document's content hash, so stale
// entries can never be served.
func loadDocument(path string, cache *DiskCache) ([]decl.Decl, error) {
	if cache == nil {
		return decl.Load(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	key := HashDocument(data)

	var payload DiskPayload
	if ok, err := cache.Get(key, &payload); err == nil && ok {
		return payload.Decls, nil
	}

	decls, err := decl.Load(path)
	if err != nil {
		return nil, err
	}
	// Best effort: a failed cache write must not fail the run.
	_ = cache.Put(key, &DiskPayload{
		Schema: diskCacheSchemaVersion,
		Path:   path,
		Decls:  decls,
	})
	return decls, nil
}

// MergeBags folds per-document bags into one sorted bag.
func MergeBags(results []DocumentResult) *diag.Bag {
	total := 0
	for _, res := range results {
		if res.Bag != nil {
			total += res.Bag.Len()
		}
	}
	merged := diag.NewBag(total)
	for _, res := range results {
		if res.Bag != nil {
			merged.Merge(res.Bag)
		}
	}
	merged.Sort()
	return merged
}
