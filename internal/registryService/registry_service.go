package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lostfound-registry/internal/keylock"
	"lostfound-registry/internal/lifecycle"
	"lostfound-registry/internal/models"
	"lostfound-registry/internal/registryerrors"
	"lostfound-registry/internal/repository"
	"lostfound-registry/utils"
)

// registry codes are random; a collision is retried a few times
const registryCodeAttempts = 3

// CandidateGenerator is the part of the match coordinator triggered on registration
type CandidateGenerator interface {
	GenerateCandidates(ctx context.Context, itemID string) ([]models.Match, error)
}

// RegistryService owns item records and their lifecycle transitions
type RegistryService struct {
	items   repository.ItemStore
	policy  *lifecycle.Policy
	locks   *keylock.Locker
	matcher CandidateGenerator
	now     func() time.Time
}

// NewRegistryService creates a new RegistryService instance. matcher may be
// nil, in which case registration does not generate candidates.
func NewRegistryService(items repository.ItemStore, policy *lifecycle.Policy, locks *keylock.Locker, matcher CandidateGenerator) *RegistryService {
	return &RegistryService{
		items:   items,
		policy:  policy,
		locks:   locks,
		matcher: matcher,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used for timestamps
func (s *RegistryService) WithClock(now func() time.Time) *RegistryService {
	s.now = now
	return s
}

// RegisterLost records a citizen's lost item report
func (s *RegistryService) RegisterLost(ctx context.Context, actor models.Actor, item models.Item) (models.Item, error) {
	if actor.UserID == "" {
		return models.Item{}, fmt.Errorf("service: %w - anonymous actor", registryerrors.ErrUnauthorized)
	}
	if err := validateCommon(item); err != nil {
		return models.Item{}, err
	}
	if item.WarehouseLocation != "" {
		return models.Item{}, fmt.Errorf("service: %w - lost items have no warehouse location", registryerrors.ErrInvalidItem)
	}
	if item.Location != nil || item.FoundAt != nil {
		return models.Item{}, fmt.Errorf("service: %w - location and found time belong to found items", registryerrors.ErrInvalidItem)
	}

	now := s.now()
	item.ItemID = utils.GenerateID()
	item.Kind = models.KindLost
	item.State = models.StateRegistrado
	item.OwnerID = actor.UserID
	item.RegisteredBy = ""
	item.RegistryCode = ""
	item.Photos = nil
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.items.CreateItem(ctx, item); err != nil {
		return models.Item{}, fmt.Errorf("service: failed to register lost item: %w", err)
	}

	utils.Info("Lost item registered", map[string]any{"item_id": item.ItemID, "owner_id": actor.UserID})
	s.generateCandidates(ctx, item.ItemID)
	return s.items.GetItem(ctx, item.ItemID)
}

// RegisterFound records an item handed in to staff and assigns its registry code
func (s *RegistryService) RegisterFound(ctx context.Context, actor models.Actor, item models.Item) (models.Item, error) {
	if !s.policy.Permits(actor, lifecycle.EdgeShelve) {
		return models.Item{}, fmt.Errorf("service: %w - user %q may not register found items", registryerrors.ErrUnauthorized, actor.UserID)
	}
	if err := validateCommon(item); err != nil {
		return models.Item{}, err
	}
	if item.FoundAt == nil || item.FoundAt.IsZero() {
		return models.Item{}, fmt.Errorf("service: %w - found time is required", registryerrors.ErrInvalidItem)
	}

	now := s.now()
	item.Kind = models.KindFound
	item.State = models.StateRegistrado
	item.OwnerID = ""
	item.RegisteredBy = actor.UserID
	item.Photos = nil
	item.CreatedAt = now
	item.UpdatedAt = now

	var err error
	for attempt := 0; attempt < registryCodeAttempts; attempt++ {
		item.ItemID = utils.GenerateID()
		item.RegistryCode = utils.GenerateRegistryCode(now)
		if err = s.items.CreateItem(ctx, item); !errors.Is(err, registryerrors.ErrConflict) {
			break
		}
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("service: failed to register found item: %w", err)
	}

	utils.Info("Found item registered", map[string]any{
		"item_id":       item.ItemID,
		"registry_code": item.RegistryCode,
		"registered_by": actor.UserID,
	})
	s.generateCandidates(ctx, item.ItemID)
	return s.items.GetItem(ctx, item.ItemID)
}

// generateCandidates runs the match coordinator; failures never fail registration
func (s *RegistryService) generateCandidates(ctx context.Context, itemID string) {
	if s.matcher == nil {
		return
	}
	matches, err := s.matcher.GenerateCandidates(ctx, itemID)
	if err != nil {
		utils.Error("Candidate generation failed", map[string]any{"item_id": itemID, "error": err.Error()})
		return
	}
	utils.Info("Candidates generated", map[string]any{"item_id": itemID, "count": len(matches)})
}

// GetItem returns one item
func (s *RegistryService) GetItem(ctx context.Context, itemID string) (models.Item, error) {
	if itemID == "" {
		return models.Item{}, fmt.Errorf("service: %w - empty item ID", registryerrors.ErrInvalidItem)
	}
	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return models.Item{}, fmt.Errorf("service: failed to get item %s: %w", itemID, err)
	}
	return item, nil
}

// AddPhoto attaches a photo. The owner of a lost item or staff allowed to
// shelve items may add photos.
func (s *RegistryService) AddPhoto(ctx context.Context, actor models.Actor, itemID string, photo models.Photo) (models.Photo, error) {
	if strings.TrimSpace(photo.URL) == "" {
		return models.Photo{}, fmt.Errorf("service: %w - photo URL is required", registryerrors.ErrInvalidItem)
	}

	unlock := s.locks.Lock(keylock.ItemKey(itemID))
	defer unlock()

	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return models.Photo{}, fmt.Errorf("service: failed to add photo to item %s: %w", itemID, err)
	}
	owner := item.OwnerID != "" && item.OwnerID == actor.UserID
	if !owner && !s.policy.Permits(actor, lifecycle.EdgeShelve) {
		return models.Photo{}, fmt.Errorf("service: %w - user %q may not add photos to item %s", registryerrors.ErrUnauthorized, actor.UserID, itemID)
	}

	photo.PhotoID = utils.GenerateID()
	stored, err := s.items.AddPhoto(ctx, itemID, photo)
	if err != nil {
		return models.Photo{}, fmt.Errorf("service: failed to add photo to item %s: %w", itemID, err)
	}
	return stored, nil
}

// Transition moves an item along one edge of the state machine, if the
// actor's roles allow that edge. Calls on the same item are serialized.
func (s *RegistryService) Transition(ctx context.Context, itemID string, target models.ItemState, actor models.Actor) (models.Item, error) {
	unlock := s.locks.Lock(keylock.ItemKey(itemID))
	defer unlock()

	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return models.Item{}, fmt.Errorf("service: failed to transition item %s: %w", itemID, err)
	}
	if err := s.policy.Check(actor, item.State, target); err != nil {
		return models.Item{}, fmt.Errorf("service: item %s: %w", itemID, err)
	}

	transition := models.ItemTransition{ItemID: itemID, From: []models.ItemState{item.State}, To: target}
	if err := s.items.TransitionItems(ctx, []models.ItemTransition{transition}, s.now()); err != nil {
		return models.Item{}, fmt.Errorf("service: failed to transition item %s: %w", itemID, err)
	}

	utils.Info("Item transitioned", map[string]any{
		"item_id": itemID,
		"from":    item.State,
		"to":      target,
		"actor":   actor.UserID,
	})
	return s.items.GetItem(ctx, itemID)
}

func validateCommon(item models.Item) error {
	if strings.TrimSpace(item.Title) == "" {
		return fmt.Errorf("service: %w - title is required", registryerrors.ErrInvalidItem)
	}
	if strings.TrimSpace(item.CategoryID) == "" {
		return fmt.Errorf("service: %w - category is required", registryerrors.ErrInvalidItem)
	}
	return nil
}
