package catalog

import (
	"sync"
	"time"

	"github.com/bigsofa/bigsofa-backend/internal/app/model"
	"github.com/bigsofa/bigsofa-backend/pkg/logger"
)

// Query identifies one catalog view: a category plus an optional search
// filter. CategoryID zero means all categories.
type Query struct {
	CategoryID uint
	Search     string
}

// Snapshot is an immutable catalog result tagged with the generation of the
// load that produced it.
type Snapshot struct {
	Query      Query
	Items      []model.FurnitureItem
	Generation uint64
	LoadedAt   time.Time
}

// fetchFunc performs the actual database load for a query.
type fetchFunc func(q Query) ([]model.FurnitureItem, error)

// entry tracks the freshest load for one category. Staleness is only judged
// between loads of the same category; loads of different categories never
// supersede each other.
type entry struct {
	latest  uint64
	current *Snapshot
}

// Loader serializes catalog refreshes with a per-category generation counter
// so that overlapping loads of the same category resolve last-request-wins:
// when a slow earlier load finishes after a newer one for that category, its
// result is discarded and the newer snapshot stays installed. A failed load
// keeps the previous snapshot intact.
type Loader struct {
	fetch fetchFunc

	mu      sync.Mutex
	nextGen uint64
	entries map[uint]*entry
}

func NewLoader(fetch fetchFunc) *Loader {
	return &Loader{
		fetch:   fetch,
		entries: make(map[uint]*entry),
	}
}

// entry returns the category's slot, creating it on first use. Callers hold
// l.mu.
func (l *Loader) entry(categoryID uint) *entry {
	e, ok := l.entries[categoryID]
	if !ok {
		e = &entry{}
		l.entries[categoryID] = e
	}
	return e
}

// begin issues a new generation for the query's category. Generations are
// strictly increasing across the loader; only the highest one issued for a
// category may install its result there.
func (l *Loader) begin(q Query) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextGen++
	gen := l.nextGen
	l.entry(q.CategoryID).latest = gen

	logger.Debug("Catalog load started", map[string]interface{}{
		"generation":  gen,
		"category_id": q.CategoryID,
		"search":      q.Search,
	})
	return gen
}

// Load fetches the catalog view for q. The returned snapshot is the freshest
// one available for q's category: the result of this load, or a newer load
// of the same category that finished first, or the previous snapshot when
// the fetch fails.
func (l *Loader) Load(q Query) (*Snapshot, error) {
	gen := l.begin(q)

	items, err := l.fetch(q)

	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.entry(q.CategoryID)

	if err != nil {
		logger.Error("Catalog load failed", err, map[string]interface{}{
			"generation":  gen,
			"category_id": q.CategoryID,
		})
		return e.current, err
	}

	if gen < e.latest {
		// A newer load for this category was issued while this one was in
		// flight. Its result wins once it lands; until then this result is
		// still the freshest data available.
		if e.current == nil || e.current.Generation < gen {
			e.current = &Snapshot{
				Query:      q,
				Items:      items,
				Generation: gen,
				LoadedAt:   time.Now(),
			}
			return e.current, nil
		}
		logger.Debug("Stale catalog load discarded", map[string]interface{}{
			"generation":  gen,
			"latest":      e.latest,
			"category_id": q.CategoryID,
		})
		return e.current, nil
	}

	e.current = &Snapshot{
		Query:      q,
		Items:      items,
		Generation: gen,
		LoadedAt:   time.Now(),
	}
	return e.current, nil
}

// Current returns the installed snapshot for a category, or nil before its
// first successful load.
func (l *Loader) Current(categoryID uint) *Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entry(categoryID).current
}

// Invalidate drops all installed snapshots so the next loads hit the
// database. Called after admin mutations.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make(map[uint]*entry)
}
