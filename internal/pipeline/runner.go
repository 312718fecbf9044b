// Package pipeline orchestrates the news ETL run:
// Fetch -> Normalize -> Filter -> Deduplicate -> Sort -> Store.
package pipeline

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/newsscan/internal/analytics"
	"github.com/seenimoa/newsscan/internal/parsers"
	"github.com/seenimoa/newsscan/internal/storage"
	"github.com/seenimoa/newsscan/pkg/models"
	"github.com/seenimoa/newsscan/pkg/utils"
)

// Connector fetches normalized items from one news source. Implementations
// must tolerate network failures internally: log, return what was fetched,
// and reserve the error return for whole-group failures.
type Connector interface {
	Name() string
	Fetch(ctx context.Context, categories []string) ([]models.NewsItem, error)
	FetchCategory(ctx context.Context, category string) ([]models.NewsItem, error)
}

// IntelFetcher fetches the intel feed group (think tanks, OSINT, cyber).
type IntelFetcher interface {
	FetchIntel(ctx context.Context) ([]models.NewsItem, error)
}

// Options configures one pipeline run.
type Options struct {
	UseGDELT bool
	UseRSS   bool
	UseIntel bool

	Categories []string

	Filter *FilterConfig

	Storage   storage.Storage
	OutputDir string

	Normalize   bool
	Deduplicate bool
}

// DefaultCategories are fetched when no explicit category list is given.
var DefaultCategories = []string{"finance", "tech", "politics", "gov", "ai", "intel"}

// DefaultOptions returns options with all stages and source groups enabled.
func DefaultOptions() Options {
	return Options{
		UseGDELT:    true,
		UseRSS:      true,
		UseIntel:    true,
		Categories:  DefaultCategories,
		OutputDir:   "./output",
		Normalize:   true,
		Deduplicate: true,
	}
}

// Pipeline runs the full ETL sequence. Source groups are external
// collaborators behind the Connector interface; a failing group is recorded
// and never aborts the run.
type Pipeline struct {
	opts       Options
	gdelt      Connector
	rss        Connector
	intel      IntelFetcher
	normalizer *parsers.Normalizer
	dedup      *analytics.Deduplicator
	log        *zap.Logger
}

// New creates a pipeline. Connectors are attached with SetGDELT / SetRSS /
// SetIntel; a nil logger is replaced with a no-op logger.
func New(opts Options, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		opts:       opts,
		normalizer: parsers.NewNormalizer(),
		dedup:      analytics.NewDeduplicator(),
		log:        log,
	}
}

// SetGDELT attaches the GDELT connector.
func (p *Pipeline) SetGDELT(c Connector) *Pipeline { p.gdelt = c; return p }

// SetRSS attaches the RSS connector.
func (p *Pipeline) SetRSS(c Connector) *Pipeline { p.rss = c; return p }

// SetIntel attaches the intel feed fetcher.
func (p *Pipeline) SetIntel(f IntelFetcher) *Pipeline { p.intel = f; return p }

// SetFilter replaces the filter configuration.
func (p *Pipeline) SetFilter(cfg *FilterConfig) *Pipeline { p.opts.Filter = cfg; return p }

// SetStorage replaces the storage adapter.
func (p *Pipeline) SetStorage(s storage.Storage) *Pipeline { p.opts.Storage = s; return p }

// Run executes the pipeline. It never returns an error: every failure is
// recorded in the result's error list and the run continues with whatever
// data survived.
func (p *Pipeline) Run(ctx context.Context) *models.PipelineResult {
	start := time.Now()
	var errs []models.PipelineError

	// Stage 1: Fetch. The three source groups run independently; each
	// group's items land in its own slot and are appended only after every
	// group has completed, so there are no concurrent writers on the
	// accumulation list.
	p.log.Info("pipeline: fetch stage starting")

	type fetchGroup struct {
		name  string
		run   func(context.Context) ([]models.NewsItem, error)
		items []models.NewsItem
		err   error
	}

	var groups []*fetchGroup
	if p.opts.UseGDELT && p.gdelt != nil {
		groups = append(groups, &fetchGroup{name: p.gdelt.Name(), run: func(ctx context.Context) ([]models.NewsItem, error) {
			return p.gdelt.Fetch(ctx, p.opts.Categories)
		}})
	}
	if p.opts.UseRSS && p.rss != nil {
		groups = append(groups, &fetchGroup{name: p.rss.Name(), run: func(ctx context.Context) ([]models.NewsItem, error) {
			return p.rss.Fetch(ctx, p.opts.Categories)
		}})
	}
	if p.opts.UseIntel && p.intel != nil {
		groups = append(groups, &fetchGroup{name: "Intel", run: p.intel.FetchIntel})
	}

	var g errgroup.Group
	for _, grp := range groups {
		grp := grp
		g.Go(func() error {
			grp.items, grp.err = grp.run(ctx)
			return nil // group failures are recorded, never propagated
		})
	}
	_ = g.Wait()

	var items []models.NewsItem
	for _, grp := range groups {
		if grp.err != nil {
			p.log.Warn("pipeline: fetch group failed",
				zap.String("source", grp.name), zap.Error(grp.err))
			errs = append(errs, models.PipelineError{
				Stage:     "fetch",
				Source:    grp.name,
				Message:   grp.err.Error(),
				Timestamp: utils.NowISO(),
			})
			continue
		}
		p.log.Info("pipeline: fetched",
			zap.String("source", grp.name), zap.Int("items", len(grp.items)))
		items = append(items, grp.items...)
	}

	fetched := len(items)

	// Stage 2: Normalize.
	if p.opts.Normalize {
		p.log.Info("pipeline: normalize stage starting")
		items = p.normalizer.NormalizeMany(items)
	}
	parsed := len(items)

	// Stage 3: Filter.
	filtered := 0
	if p.opts.Filter != nil {
		p.log.Info("pipeline: filter stage starting")
		before := len(items)
		items = Filter(items, *p.opts.Filter)
		filtered = before - len(items)
		p.log.Info("pipeline: filtered", zap.Int("removed", filtered))
	}

	// Stage 4: Deduplicate.
	deduped := 0
	if p.opts.Deduplicate {
		p.log.Info("pipeline: dedup stage starting")
		result := p.dedup.Deduplicate(items)
		items = result.Items
		deduped = result.RemovedCount
		p.log.Info("pipeline: deduplicated", zap.Int("removed", deduped))
	}

	// Sort newest first on parsed instants. Unparseable timestamps sort
	// with an epoch fallback rather than relying on string ordering.
	sortByPublished(items)

	// Stage 5: Store.
	stored := len(items)
	sink := p.opts.Storage
	if sink == nil && p.opts.OutputDir != "" {
		sink = storage.NewJSONLWithTimestamp(p.opts.OutputDir, p.log)
	}
	if sink != nil {
		p.log.Info("pipeline: store stage starting", zap.String("path", sink.Path()))
		if err := sink.Save(ctx, items); err != nil {
			p.log.Warn("pipeline: store failed", zap.Error(err))
			errs = append(errs, models.PipelineError{
				Stage:     "store",
				Message:   err.Error(),
				Timestamp: utils.NowISO(),
			})
		}
	}

	durationMS := time.Since(start).Milliseconds()
	p.log.Info("pipeline: complete",
		zap.Int("items", len(items)), zap.Int64("duration_ms", durationMS))

	if items == nil {
		items = []models.NewsItem{}
	}
	return &models.PipelineResult{
		Items: items,
		Stats: models.PipelineStats{
			Fetched:      fetched,
			Parsed:       parsed,
			Filtered:     filtered,
			Deduplicated: deduped,
			Stored:       stored,
			DurationMS:   durationMS,
		},
		Errors: errs,
	}
}

// sortByPublished orders items by publish instant, newest first. The sort
// is stable so items with equal or unparseable timestamps keep their
// relative order.
func sortByPublished(items []models.NewsItem) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, _ := items[i].PublishedTime() // zero time for unparseable
		tj, _ := items[j].PublishedTime()
		return ti.After(tj)
	})
}
