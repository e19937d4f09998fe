// Package ingest folds heterogeneous CSV/XLSX source files into a
// deduplicated set of company entities.
package ingest

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/waylens/terminal/internal/model"
)

var (
	parentheticalRe = regexp.MustCompile(`\s*\([^)]*\)`)
	nonAlnumRe      = regexp.MustCompile(`[^a-z0-9\s]`)
)

// corporateSuffixes are trailing tokens dropped from the merge key, so
// "Samsara Inc" and "Samsara" resolve to one entity.
var corporateSuffixes = map[string]struct{}{
	"inc": {}, "incorporated": {}, "llc": {}, "ltd": {}, "limited": {},
	"corp": {}, "corporation": {}, "co": {},
}

// NormalizeName lowercases a company name, strips every character outside
// [a-z0-9\s], collapses whitespace, and drops trailing corporate suffix
// tokens. The result is the merge key for entity resolution.
func NormalizeName(raw string) string {
	s := strings.ToLower(raw)
	s = nonAlnumRe.ReplaceAllString(s, "")
	fields := strings.Fields(s)
	for len(fields) > 1 {
		if _, ok := corporateSuffixes[fields[len(fields)-1]]; !ok {
			break
		}
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}

// CleanDisplayName strips parenthetical annotations such as ownership notes
// from a raw company name.
func CleanDisplayName(raw string) string {
	return strings.TrimSpace(parentheticalRe.ReplaceAllString(raw, ""))
}

// Resolver is the entity arena. Entities are keyed by normalized name,
// addressed by id, and mutated additively through Mutate. Ingestion is
// single-threaded, so no locking is needed.
type Resolver struct {
	byKey    map[string]string
	entities map[string]*model.CompanyEntity
	order    []string
	now      func() time.Time
}

// NewResolver creates an empty entity arena.
func NewResolver() *Resolver {
	return &Resolver{
		byKey:    make(map[string]string),
		entities: make(map[string]*model.CompanyEntity),
		now:      time.Now,
	}
}

// Resolve finds or creates the entity for a raw company name and returns
// its id. Ids are allocated sequentially as "company-N" and never reused.
// The empty normalized name resolves to no entity and returns false.
func (r *Resolver) Resolve(rawName string) (string, bool) {
	display := CleanDisplayName(rawName)
	key := NormalizeName(display)
	if key == "" {
		return "", false
	}
	if id, ok := r.byKey[key]; ok {
		return id, true
	}

	id := fmt.Sprintf("company-%d", len(r.order)+1)
	r.byKey[key] = id
	r.entities[id] = &model.CompanyEntity{
		ID:          id,
		Name:        display,
		LastUpdated: r.now(), // set once at creation, never refreshed on merge
	}
	r.order = append(r.order, id)
	return id, true
}

// Mutate applies an additive mutation to the entity with the given id.
// Unknown ids are ignored.
func (r *Resolver) Mutate(id string, fn func(*model.CompanyEntity)) {
	if e, ok := r.entities[id]; ok {
		fn(e)
	}
}

// Get returns the entity with the given id, or nil.
func (r *Resolver) Get(id string) *model.CompanyEntity {
	return r.entities[id]
}

// Len returns the number of entities in the arena.
func (r *Resolver) Len() int { return len(r.order) }

// Entities returns all entities in creation order.
func (r *Resolver) Entities() []model.CompanyEntity {
	out := make([]model.CompanyEntity, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.entities[id])
	}
	return out
}

// appendUnique appends v to list unless an exact-equal string is present.
func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

// touchSource records a contributing filename on the entity. Consecutive
// rows from the same file add it once; per-row company switches within a
// file can re-add it, which is accepted in the audit list.
func touchSource(e *model.CompanyEntity, filename string) {
	if n := len(e.SourceFiles); n > 0 && e.SourceFiles[n-1] == filename {
		return
	}
	e.SourceFiles = append(e.SourceFiles, filename)
}
