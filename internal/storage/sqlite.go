package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/seenimoa/newsscan/pkg/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS news_items (
	id           TEXT PRIMARY KEY,
	source       TEXT NOT NULL,
	url          TEXT NOT NULL,
	title        TEXT NOT NULL,
	published_at TEXT,
	fetched_at   TEXT,
	authors      TEXT,
	summary      TEXT,
	content_text TEXT,
	tickers      TEXT,
	topics       TEXT,
	language     TEXT,
	metadata     TEXT,
	created_at   TEXT DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_news_published_at ON news_items(published_at);
CREATE INDEX IF NOT EXISTS idx_news_source ON news_items(source);
CREATE INDEX IF NOT EXISTS idx_news_created_at ON news_items(created_at);
`

// SQLite persists news items in a local SQLite database. Saving an item
// whose id already exists replaces the stored row.
type SQLite struct {
	db   *sql.DB
	path string
	log  *zap.Logger
}

var _ Storage = (*SQLite)(nil)

// NewSQLite opens (or creates) the database at path and ensures the schema
// exists. The caller owns the returned store and must Close it.
func NewSQLite(path string, log *zap.Logger) (*SQLite, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	log.Debug("database opened", zap.String("path", path))
	return &SQLite{db: db, path: path, log: log}, nil
}

// Path returns the database file path.
func (s *SQLite) Path() string { return s.path }

// Close releases the underlying database handle.
func (s *SQLite) Close() error { return s.db.Close() }

// Save upserts all items inside a single transaction.
func (s *SQLite) Save(ctx context.Context, items []models.NewsItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, item := range items {
		authors, err := json.Marshal(item.Authors)
		if err != nil {
			return fmt.Errorf("marshal authors for %s: %w", item.ID, err)
		}
		tickers, err := json.Marshal(item.Tickers)
		if err != nil {
			return fmt.Errorf("marshal tickers for %s: %w", item.ID, err)
		}
		topics, err := json.Marshal(item.Topics)
		if err != nil {
			return fmt.Errorf("marshal topics for %s: %w", item.ID, err)
		}
		metadata, err := json.Marshal(item.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata for %s: %w", item.ID, err)
		}

		query, args, err := sq.Insert("news_items").Options("OR REPLACE").
			Columns("id", "source", "url", "title", "published_at", "fetched_at",
				"authors", "summary", "content_text", "tickers", "topics",
				"language", "metadata").
			Values(item.ID, item.Source, item.URL, item.Title, item.PublishedAt,
				item.FetchedAt, string(authors), item.Summary, item.ContentText,
				string(tickers), string(topics), item.Language, string(metadata)).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert item %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.log.Info("saved items", zap.Int("count", len(items)), zap.String("path", s.path))
	return nil
}

// Load returns all stored items, newest first.
func (s *SQLite) Load(ctx context.Context) ([]models.NewsItem, error) {
	return s.query(ctx, s.selectItems().OrderBy("published_at DESC"))
}

// Clear deletes every stored item. The schema stays in place.
func (s *SQLite) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM news_items"); err != nil {
		return fmt.Errorf("clear news_items: %w", err)
	}
	return nil
}

// Count returns the number of stored items.
func (s *SQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM news_items").Scan(&n); err != nil {
		return 0, fmt.Errorf("count news_items: %w", err)
	}
	return n, nil
}

// Sources returns the distinct source names present in storage.
func (s *SQLite) Sources(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT source FROM news_items ORDER BY source")
	if err != nil {
		return nil, fmt.Errorf("query sources: %w", err)
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var src string
		if err := rows.Scan(&src); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		sources = append(sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return sources, nil
}

// BySource returns the stored items from one source, newest first.
func (s *SQLite) BySource(ctx context.Context, source string) ([]models.NewsItem, error) {
	return s.query(ctx, s.selectItems().
		Where(sq.Eq{"source": source}).
		OrderBy("published_at DESC"))
}

// Alerts returns the stored alert items, newest first.
func (s *SQLite) Alerts(ctx context.Context) ([]models.NewsItem, error) {
	return s.query(ctx, s.selectItems().
		Where(sq.Expr("json_extract(metadata, '$.is_alert') = 1")).
		OrderBy("published_at DESC"))
}

// Recent returns the newest limit items.
func (s *SQLite) Recent(ctx context.Context, limit int) ([]models.NewsItem, error) {
	return s.query(ctx, s.selectItems().
		OrderBy("published_at DESC").
		Limit(uint64(limit)))
}

func (s *SQLite) selectItems() sq.SelectBuilder {
	return sq.Select("id", "source", "url", "title", "published_at", "fetched_at",
		"authors", "summary", "content_text", "tickers", "topics",
		"language", "metadata").
		From("news_items")
}

func (s *SQLite) query(ctx context.Context, b sq.SelectBuilder) ([]models.NewsItem, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query news_items: %w", err)
	}
	defer rows.Close()

	items := []models.NewsItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return items, nil
}

func scanItem(rows *sql.Rows) (models.NewsItem, error) {
	var item models.NewsItem
	var authors, tickers, topics, metadata sql.NullString
	err := rows.Scan(&item.ID, &item.Source, &item.URL, &item.Title,
		&item.PublishedAt, &item.FetchedAt, &authors, &item.Summary,
		&item.ContentText, &tickers, &topics, &item.Language, &metadata)
	if err != nil {
		return item, fmt.Errorf("scan item: %w", err)
	}
	if authors.Valid && authors.String != "" {
		if err := json.Unmarshal([]byte(authors.String), &item.Authors); err != nil {
			return item, fmt.Errorf("decode authors for %s: %w", item.ID, err)
		}
	}
	if tickers.Valid && tickers.String != "" {
		if err := json.Unmarshal([]byte(tickers.String), &item.Tickers); err != nil {
			return item, fmt.Errorf("decode tickers for %s: %w", item.ID, err)
		}
	}
	if topics.Valid && topics.String != "" {
		if err := json.Unmarshal([]byte(topics.String), &item.Topics); err != nil {
			return item, fmt.Errorf("decode topics for %s: %w", item.ID, err)
		}
	}
	if metadata.Valid && metadata.String != "" {
		if err := json.Unmarshal([]byte(metadata.String), &item.Metadata); err != nil {
			return item, fmt.Errorf("decode metadata for %s: %w", item.ID, err)
		}
	}
	return item, nil
}
