package index

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rotisserie/eris"

	"github.com/waylens/terminal/internal/model"
)

// keywordCap bounds the denormalized keyword list in the snapshot. It is a
// size bound only; the full keyword set lives on each entity.
const keywordCap = 1000

// Export finalizes the entities, builds the snapshot, and writes it as
// JSON to path. The snapshot is the sole channel between ingestion and
// the runtime search engine.
func Export(entities []model.CompanyEntity, path string) (*model.DatasetSnapshot, error) {
	snap := BuildSnapshot(entities)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "index: marshal snapshot")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, eris.Wrapf(err, "index: create dir for %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, eris.Wrapf(err, "index: write %s", path)
	}
	return snap, nil
}

// BuildSnapshot finalizes keywords/indexes and assembles the export shape.
func BuildSnapshot(entities []model.CompanyEntity) *model.DatasetSnapshot {
	finalized, inv := Finalize(entities)

	// First 1000 distinct keywords in derivation order across entities.
	var keywords []string
	seen := map[string]bool{}
	for _, e := range finalized {
		for _, kw := range e.Keywords {
			if len(keywords) >= keywordCap {
				break
			}
			if seen[kw] {
				continue
			}
			seen[kw] = true
			keywords = append(keywords, kw)
		}
	}

	return &model.DatasetSnapshot{
		Companies: finalized,
		Metadata: model.SnapshotMetadata{
			TotalCompanies: len(finalized),
			GeneratedAt:    time.Now().UTC(),
			Version:        model.SnapshotVersion,
		},
		Indexes: model.SnapshotIndexes{
			RevenueRanges:   sortedKeys(inv.RevenueRange),
			FleetSizeRanges: sortedKeys(inv.FleetSizeRange),
			ValuationRanges: sortedKeys(inv.ValuationRange),
			Geographies:     sortedKeys(inv.Geography),
			Keywords:        keywords,
		},
	}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
