// Package inventory owns the item collection: an ordered in-memory snapshot
// of the backing store, with upsert-by-code semantics and filtered listing.
package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/medstock/medstock/internal/model"
	"github.com/medstock/medstock/internal/stock"
	"github.com/medstock/medstock/internal/store"
)

// Collection is the backing-store collection name for inventory items.
const Collection = "medstock_inventory"

// Filter narrows List results. Zero values mean "no constraint". Search
// matches case-insensitively against code, name and supplier.
type Filter struct {
	Search   string
	Category model.Category
	Status   stock.Status
}

// Repository owns all item instances exclusively. Callers get snapshot
// copies and re-fetch after every mutation; after each successful write the
// repository reloads the full collection from the backing store rather than
// patching memory.
type Repository struct {
	backend store.Backend
	log     zerolog.Logger
	now     func() time.Time

	// writeMu serializes mutating operations end to end, so a delete's
	// existence check cannot interleave with another writer's reload.
	writeMu sync.Mutex

	mu    sync.RWMutex
	items []model.Item
	index map[string]int
}

// New creates a repository over the given backing store. The collection is
// empty until Load is called.
func New(backend store.Backend, log zerolog.Logger) *Repository {
	return &Repository{
		backend: backend,
		log:     log,
		now:     time.Now,
		index:   make(map[string]int),
	}
}

// Load replaces the in-memory collection with the backing store's contents.
func (r *Repository) Load(ctx context.Context) error {
	records, err := r.backend.ListAll(ctx, Collection)
	if err != nil {
		r.log.Error().Err(err).Msg("loading inventory failed")
		return &PersistenceError{Op: "load", Err: err}
	}

	items := make([]model.Item, 0, len(records))
	index := make(map[string]int, len(records))
	for _, rec := range records {
		var it model.Item
		if err := json.Unmarshal(rec.Data, &it); err != nil {
			r.log.Error().Err(err).Str("code", rec.Code).Msg("decoding stored item failed")
			return &PersistenceError{Op: "load", Err: fmt.Errorf("decoding item %s: %w", rec.Code, err)}
		}
		index[it.Code] = len(items)
		items = append(items, it)
	}

	r.mu.Lock()
	r.items, r.index = items, index
	r.mu.Unlock()
	return nil
}

// Upsert validates the item, stamps LastUpdated and writes it through the
// backing store. An existing code is replaced in full and keeps its position
// in List output; a fresh code is appended. Returns the stored item.
func (r *Repository) Upsert(ctx context.Context, it model.Item) (model.Item, error) {
	if err := it.Validate(); err != nil {
		return model.Item{}, err
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	it.LastUpdated = r.now().UTC()

	data, err := json.Marshal(it)
	if err != nil {
		return model.Item{}, fmt.Errorf("encoding item %s: %w", it.Code, err)
	}
	if err := r.backend.Put(ctx, Collection, it.Code, data); err != nil {
		r.log.Error().Err(err).Str("code", it.Code).Msg("storing item failed")
		return model.Item{}, &PersistenceError{Op: "upsert", Err: err}
	}

	if err := r.Load(ctx); err != nil {
		return model.Item{}, err
	}
	return it, nil
}

// Delete removes the item with the given code. Deleting an unknown code is
// an error, not a no-op; of two racing deletes of the same code exactly one
// succeeds.
func (r *Repository) Delete(ctx context.Context, code string) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if _, ok := r.FindByCode(code); !ok {
		return ErrNotFound
	}
	if err := r.backend.Delete(ctx, Collection, code); err != nil {
		r.log.Error().Err(err).Str("code", code).Msg("deleting item failed")
		return &PersistenceError{Op: "delete", Err: err}
	}
	return r.Load(ctx)
}

// FindByCode returns a copy of the matching item. The boolean is false when
// no item has the code; a missing code is never an error.
func (r *Repository) FindByCode(code string) (model.Item, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[code]
	if !ok {
		return model.Item{}, false
	}
	return r.items[i], true
}

// List returns items matching the filter, in storage order.
func (r *Repository) List(f Filter) []model.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]model.Item, 0, len(r.items))
	for _, it := range r.items {
		if term != "" &&
			!strings.Contains(strings.ToLower(it.Code), term) &&
			!strings.Contains(strings.ToLower(it.Name), term) &&
			!strings.Contains(strings.ToLower(it.Supplier), term) {
			continue
		}
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		if f.Status != "" && stock.StatusByDaysOfStock(it) != f.Status {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Len returns the number of items in the collection.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Persist writes the full in-memory collection back to the backing store,
// one record per item.
func (r *Repository) Persist(ctx context.Context) error {
	r.mu.RLock()
	items := append([]model.Item(nil), r.items...)
	r.mu.RUnlock()

	for _, it := range items {
		data, err := json.Marshal(it)
		if err != nil {
			return fmt.Errorf("encoding item %s: %w", it.Code, err)
		}
		if err := r.backend.Put(ctx, Collection, it.Code, data); err != nil {
			r.log.Error().Err(err).Str("code", it.Code).Msg("persisting item failed")
			return &PersistenceError{Op: "persist", Err: err}
		}
	}
	return nil
}
