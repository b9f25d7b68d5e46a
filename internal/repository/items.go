package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	model "lostfound-registry/internal/models"
	"lostfound-registry/internal/registryerrors"
)

// CreateItem stores a new item. Ids and registry codes are unique.
func (r *MemoryRepo) CreateItem(ctx context.Context, item model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ItemID == "" {
		return fmt.Errorf("create item: empty id: %w", registryerrors.ErrInvalidItem)
	}
	if _, ok := r.items[item.ItemID]; ok {
		return fmt.Errorf("create item %s: %w", item.ItemID, registryerrors.ErrConflict)
	}
	if item.RegistryCode != "" {
		if _, ok := r.registryCodes[item.RegistryCode]; ok {
			return fmt.Errorf("create item %s: registry code %s taken: %w", item.ItemID, item.RegistryCode, registryerrors.ErrConflict)
		}
		r.registryCodes[item.RegistryCode] = item.ItemID
	}

	r.items[item.ItemID] = cloneItem(item)
	return nil
}

// GetItem returns one item by id
func (r *MemoryRepo) GetItem(ctx context.Context, itemID string) (model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[itemID]
	if !ok {
		return model.Item{}, fmt.Errorf("get item %s: %w", itemID, registryerrors.ErrNotFound)
	}
	return cloneItem(item), nil
}

// ListItems returns the items matching filter ordered by creation time
func (r *MemoryRepo) ListItems(ctx context.Context, filter ItemFilter) ([]model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]model.Item, 0)
	for _, item := range r.items {
		if filter.Kind != "" && item.Kind != filter.Kind {
			continue
		}
		if len(filter.States) > 0 && !stateIn(item.State, filter.States) {
			continue
		}
		if filter.CategoryOrUnset != "" && item.CategoryID != "" && item.CategoryID != filter.CategoryOrUnset {
			continue
		}
		items = append(items, cloneItem(item))
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ItemID < items[j].ItemID
	})
	return items, nil
}

// TransitionItems applies every transition or none of them
func (r *MemoryRepo) TransitionItems(ctx context.Context, transitions []model.ItemTransition, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkTransitionsLocked(transitions); err != nil {
		return fmt.Errorf("transition items: %w", err)
	}
	if err := r.checkNotAuctionedLocked(transitions); err != nil {
		return fmt.Errorf("transition items: %w", err)
	}
	r.applyTransitionsLocked(transitions, at)
	return nil
}

// AddPhoto appends a photo with the next order index. A primary photo
// demotes the previous primary; the first photo is always primary.
func (r *MemoryRepo) AddPhoto(ctx context.Context, itemID string, photo model.Photo) (model.Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[itemID]
	if !ok {
		return model.Photo{}, fmt.Errorf("add photo to item %s: %w", itemID, registryerrors.ErrNotFound)
	}

	photos := append([]model.Photo(nil), item.Photos...)
	photo.ItemID = itemID
	photo.Order = len(photos)
	if len(photos) == 0 {
		photo.Primary = true
	}
	if photo.Primary {
		for i := range photos {
			photos[i].Primary = false
		}
	}
	item.Photos = append(photos, photo)
	r.items[itemID] = item
	return photo, nil
}

// checkTransitionsLocked verifies every from-state without mutating anything.
// Caller must hold r.mu.
func (r *MemoryRepo) checkTransitionsLocked(transitions []model.ItemTransition) error {
	for _, t := range transitions {
		item, ok := r.items[t.ItemID]
		if !ok {
			return fmt.Errorf("item %s: %w", t.ItemID, registryerrors.ErrNotFound)
		}
		if !stateIn(item.State, t.From) {
			return fmt.Errorf("item %s is %s, expected one of %v: %w", t.ItemID, item.State, t.From, registryerrors.ErrInvalidState)
		}
	}
	return nil
}

// checkNotAuctionedLocked rejects moving an item whose lot is being auctioned
// or was adjudicated; only the auction itself moves those items.
// Caller must hold r.mu.
func (r *MemoryRepo) checkNotAuctionedLocked(transitions []model.ItemTransition) error {
	for _, t := range transitions {
		lotID, ok := r.itemLots[t.ItemID]
		if !ok {
			continue
		}
		if state := r.lots[lotID].State; state == model.LotEnSubasta || state == model.LotAdjudicado {
			return fmt.Errorf("item %s belongs to lot %s in state %s: %w", t.ItemID, lotID, state, registryerrors.ErrInvalidState)
		}
	}
	return nil
}

func (r *MemoryRepo) applyTransitionsLocked(transitions []model.ItemTransition, at time.Time) {
	for _, t := range transitions {
		item := r.items[t.ItemID]
		item.State = t.To
		item.UpdatedAt = at
		r.items[t.ItemID] = item
	}
}

func stateIn(s model.ItemState, states []model.ItemState) bool {
	for _, c := range states {
		if c == s {
			return true
		}
	}
	return false
}

func cloneItem(item model.Item) model.Item {
	item.Photos = append(make([]model.Photo, 0, len(item.Photos)), item.Photos...)
	if item.Location != nil {
		loc := *item.Location
		item.Location = &loc
	}
	if item.FoundAt != nil {
		at := *item.FoundAt
		item.FoundAt = &at
	}
	return item
}
