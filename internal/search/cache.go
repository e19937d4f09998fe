// Package search answers scored, multi-filter queries over a dataset
// snapshot held fully in memory.
package search

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/waylens/terminal/internal/model"
)

// dataset is the process-resident structure rebuilt on every snapshot
// load: the raw snapshot plus the id map in snapshot order. Queries are
// read-only over it, so concurrent readers need no locking.
type dataset struct {
	snap  *model.DatasetSnapshot
	byID  map[string]*model.CompanyEntity
	order []string
}

// Cache is an explicit snapshot cache handle. It replaces any notion of
// module-level state: construct one, hand it to the engine, and call
// Invalidate to force a reload on next access. Concurrent loads are
// collapsed into one disk read.
type Cache struct {
	path string

	mu  sync.RWMutex
	ds  *dataset
	gen uint64
	sf  singleflight.Group
}

// NewCache creates a cache over a snapshot file path. Nothing is read
// until the first access.
func NewCache(path string) *Cache {
	return &Cache{path: path}
}

// get returns the loaded dataset, reading and indexing the snapshot on
// first use. A missing or corrupt snapshot is a hard error for the caller
// to surface as a failed-to-load-data condition.
func (c *Cache) get() (*dataset, error) {
	c.mu.RLock()
	ds := c.ds
	gen := c.gen
	c.mu.RUnlock()
	if ds != nil {
		return ds, nil
	}

	// The generation keys the flight, so callers arriving after an
	// Invalidate never join a load started before it.
	v, err, _ := c.sf.Do(strconv.FormatUint(gen, 10), func() (any, error) {
		loaded, err := loadDataset(c.path)
		if err != nil {
			return nil, err
		}
		c.store(loaded, gen)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dataset), nil
}

// store caches a loaded dataset unless an Invalidate advanced the
// generation while the load was in flight; a stale load is discarded so
// Invalidate strictly guarantees a fresh read on next access.
func (c *Cache) store(ds *dataset, gen uint64) {
	c.mu.Lock()
	if c.gen == gen {
		c.ds = ds
	}
	c.mu.Unlock()
}

// Invalidate drops the cached dataset; the next access reloads from disk.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.ds = nil
	c.gen++
	c.mu.Unlock()
}

func loadDataset(path string) (*dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "search: read snapshot %s", path)
	}

	var snap model.DatasetSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, eris.Wrapf(err, "search: parse snapshot %s", path)
	}

	ds := &dataset{
		snap:  &snap,
		byID:  make(map[string]*model.CompanyEntity, len(snap.Companies)),
		order: make([]string, 0, len(snap.Companies)),
	}
	keywords := map[string]struct{}{}
	for i := range snap.Companies {
		e := &snap.Companies[i]
		ds.byID[e.ID] = e
		ds.order = append(ds.order, e.ID)
		for _, kw := range e.Keywords {
			keywords[strings.ToLower(kw)] = struct{}{}
		}
	}

	zap.L().Info("search: snapshot loaded",
		zap.String("path", path),
		zap.Int("companies", len(snap.Companies)),
		zap.Int("keywords", len(keywords)),
	)

	return ds, nil
}
