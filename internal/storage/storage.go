// Package storage provides sinks that persist pipeline output: a
// line-delimited JSON file and a SQLite database. Both implement the
// Storage interface consumed by the pipeline orchestrator.
package storage

import (
	"context"

	"github.com/seenimoa/newsscan/pkg/models"
)

// Storage persists and retrieves news items. Save overwrites the
// destination unless the implementation was configured for append mode.
type Storage interface {
	Save(ctx context.Context, items []models.NewsItem) error
	Load(ctx context.Context) ([]models.NewsItem, error)
	Clear(ctx context.Context) error
	Path() string
}
