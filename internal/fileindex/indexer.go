package fileindex

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/waylens/terminal/internal/csvio"
	"github.com/waylens/terminal/internal/model"
)

// Indexer builds per-file metadata records. One record per physical file;
// records are never merged.
type Indexer struct {
	vocab *Vocab
}

// NewIndexer creates an indexer with the given vocabulary, defaulting
// when nil.
func NewIndexer(vocab *Vocab) *Indexer {
	if vocab == nil {
		vocab = DefaultVocab()
	}
	return &Indexer{vocab: vocab}
}

// BuildIndex scans a directory of CSV files and assembles the file-index
// snapshot. A file whose contents cannot be read still gets a record from
// its filename alone; column headers and row count stay empty.
func (ix *Indexer) BuildIndex(dir string) (*model.FileIndexSnapshot, error) {
	log := zap.L().With(zap.String("component", "fileindex"))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "fileindex: read dir %s", dir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".csv") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	snap := &model.FileIndexSnapshot{GeneratedAt: time.Now().UTC()}
	seenCompanies := map[string]bool{}
	seenTopics := map[string]bool{}

	for _, name := range names {
		meta := ix.IndexFile(dir, name)
		snap.Files = append(snap.Files, meta)

		if meta.Company != "" && !seenCompanies[meta.Company] {
			seenCompanies[meta.Company] = true
			snap.Companies = append(snap.Companies, meta.Company)
		}
		if meta.Topic != "" && !seenTopics[meta.Topic] {
			seenTopics[meta.Topic] = true
			snap.Topics = append(snap.Topics, meta.Topic)
		}
	}

	log.Info("file index built",
		zap.Int("files", len(snap.Files)),
		zap.Int("companies", len(snap.Companies)),
		zap.Int("topics", len(snap.Topics)),
	)

	return snap, nil
}

// IndexFile derives one file's metadata record.
func (ix *Indexer) IndexFile(dir, name string) model.CSVFileMetadata {
	meta := model.CSVFileMetadata{
		Filename: name,
		Filepath: filepath.Join(dir, name),
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.Split(base, "_")

	if n, err := strconv.Atoi(parts[0]); err == nil {
		meta.Number = n
	}
	for _, part := range parts {
		meta.Keywords = append(meta.Keywords, strings.ToLower(part))
	}

	meta.Company = ix.detect(meta.Keywords, ix.vocab.Companies)
	meta.Topic = ix.detect(meta.Keywords, ix.vocab.Topics)

	table, err := csvio.ReadFile(meta.Filepath)
	if err != nil {
		zap.L().Warn("fileindex: unreadable file, indexing filename only",
			zap.String("file", name),
			zap.Error(err),
		)
		return meta
	}
	meta.Columns = table.Header
	meta.RowCount = len(table.Rows)
	return meta
}

// detect scans tokens against a vocabulary with a bidirectional substring
// test. The first hit wins; remaining tokens are not checked.
func (ix *Indexer) detect(tokens, vocab []string) string {
	for _, tok := range tokens {
		for _, term := range vocab {
			if strings.Contains(tok, term) || strings.Contains(term, tok) {
				return term
			}
		}
	}
	return ""
}

// ExportIndex writes the file-index snapshot as JSON.
func ExportIndex(snap *model.FileIndexSnapshot, path string) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return eris.Wrap(err, "fileindex: marshal index")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "fileindex: create dir for %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "fileindex: write %s", path)
	}
	return nil
}

// LoadIndex reads a previously exported file-index snapshot.
func LoadIndex(path string) (*model.FileIndexSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fileindex: read index %s", path)
	}
	var snap model.FileIndexSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, eris.Wrapf(err, "fileindex: parse index %s", path)
	}
	return &snap, nil
}
