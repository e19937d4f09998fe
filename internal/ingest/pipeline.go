package ingest

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/waylens/terminal/internal/csvio"
	"github.com/waylens/terminal/internal/model"
)

// RunSummary reports the outcome of one ingestion run.
type RunSummary struct {
	FilesProcessed int
	FilesFailed    int
	Companies      int
	Duration       time.Duration
	FailedFiles    []string
}

// Pipeline folds every CSV/XLSX file in a directory into an entity arena.
// Files are processed sequentially in sorted name order; one file is fully
// read and merged before the next is opened.
type Pipeline struct {
	dir      string
	resolver *Resolver
}

// NewPipeline creates a pipeline over a source directory.
func NewPipeline(dir string) *Pipeline {
	return &Pipeline{dir: dir, resolver: NewResolver()}
}

// Resolver exposes the arena for index building after a run.
func (p *Pipeline) Resolver() *Resolver { return p.resolver }

// Run processes the directory. A file that fails to read or parse is
// logged and skipped; the run continues over the remaining files. Only a
// missing source directory aborts the run.
func (p *Pipeline) Run(ctx context.Context) (*RunSummary, error) {
	log := zap.L().With(zap.String("component", "ingest"))
	start := time.Now()

	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: read dir %s", p.dir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		lower := strings.ToLower(name)
		if strings.HasSuffix(lower, ".csv") || strings.HasSuffix(lower, ".xlsx") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	summary := &RunSummary{}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "ingest: cancelled")
		}

		table, err := p.readFile(name)
		if err != nil {
			log.Warn("skipping unreadable file",
				zap.String("file", name),
				zap.Error(err),
			)
			summary.FilesFailed++
			summary.FailedFiles = append(summary.FailedFiles, name)
			continue
		}

		category := DetectCategory(name)
		extractors[category](p.resolver, name, table)
		summary.FilesProcessed++

		log.Debug("processed file",
			zap.String("file", name),
			zap.String("category", string(category)),
			zap.Int("rows", len(table.Rows)),
		)
	}

	summary.Companies = p.resolver.Len()
	summary.Duration = time.Since(start)

	log.Info("ingestion complete",
		zap.Int("files", summary.FilesProcessed),
		zap.Int("failed", summary.FilesFailed),
		zap.Int("companies", summary.Companies),
		zap.Duration("duration", summary.Duration),
	)

	return summary, nil
}

// Entities returns the resolved entities in creation order.
func (p *Pipeline) Entities() []model.CompanyEntity {
	return p.resolver.Entities()
}

func (p *Pipeline) readFile(name string) (*csvio.Table, error) {
	path := filepath.Join(p.dir, name)
	if csvio.IsXLSX(name) {
		return csvio.ReadXLSX(path)
	}
	return csvio.ReadFile(path)
}
