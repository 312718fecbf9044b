package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/seenimoa/newsscan/pkg/models"
)

// JSONL writes news items as line-delimited JSON, one item per line.
// The raw source payload in metadata is never written.
type JSONL struct {
	path   string
	append bool
	log    *zap.Logger
}

var _ Storage = (*JSONL)(nil)

// NewJSONL creates a JSONL sink at path. When append is true, Save adds
// to the existing file instead of overwriting it.
func NewJSONL(path string, append bool, log *zap.Logger) *JSONL {
	if log == nil {
		log = zap.NewNop()
	}
	return &JSONL{path: path, append: append, log: log}
}

// NewJSONLWithTimestamp creates a JSONL sink with a timestamped filename
// inside dir, so repeated runs never clobber each other.
func NewJSONLWithTimestamp(dir string, log *zap.Logger) *JSONL {
	name := fmt.Sprintf("news_%s.jsonl", time.Now().UTC().Format("20060102_150405"))
	return NewJSONL(filepath.Join(dir, name), false, log)
}

// Path returns the destination file path.
func (s *JSONL) Path() string { return s.path }

// Save writes all items to the file. The parent directory is created if
// missing.
func (s *JSONL) Save(ctx context.Context, items []models.NewsItem) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if s.append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(s.path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, item := range items {
		line, err := item.ToJSON()
		if err != nil {
			return fmt.Errorf("marshal item %s: %w", item.ID, err)
		}
		if _, err := w.Write(line); err != nil {
			return fmt.Errorf("write %s: %w", s.path, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("write %s: %w", s.path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", s.path, err)
	}

	s.log.Info("saved items", zap.Int("count", len(items)), zap.String("path", s.path))
	return nil
}

// Load reads all items back from the file. Lines that fail to decode are
// skipped with a warning; a missing file yields an empty list.
func (s *JSONL) Load(ctx context.Context) ([]models.NewsItem, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.NewsItem{}, nil
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	items := []models.NewsItem{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var item models.NewsItem
		if err := json.Unmarshal(line, &item); err != nil {
			s.log.Warn("skipping malformed line",
				zap.String("path", s.path), zap.Int("line", lineNo), zap.Error(err))
			continue
		}
		items = append(items, item)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return items, nil
}

// Clear removes the destination file. Clearing a file that does not exist
// is not an error.
func (s *JSONL) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", s.path, err)
	}
	return nil
}
