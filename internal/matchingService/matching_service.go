package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"lostfound-registry/internal/keylock"
	"lostfound-registry/internal/lifecycle"
	"lostfound-registry/internal/metrics"
	"lostfound-registry/internal/models"
	"lostfound-registry/internal/notify"
	"lostfound-registry/internal/registryerrors"
	"lostfound-registry/internal/repository"
	"lostfound-registry/internal/scoring"
	"lostfound-registry/utils"

	"golang.org/x/sync/errgroup"
)

// ImageSimilarity is the optional external image comparison. ok is false
// when the capability has no answer for this pair.
type ImageSimilarity interface {
	Similarity(ctx context.Context, a, b models.Photo) (score float64, ok bool, err error)
}

// Options tunes candidate generation
type Options struct {
	Threshold float64
	Workers   int
	Images    ImageSimilarity
}

// MatchingService is the match coordinator: it picks pairs to score,
// persists candidates and drives their review.
type MatchingService struct {
	items     repository.ItemStore
	matches   repository.MatchStore
	scorer    *scoring.Scorer
	policy    *lifecycle.Policy
	locks     *keylock.Locker
	notifier  notify.Notifier
	metrics   *metrics.Metrics
	images    ImageSimilarity
	threshold float64
	workers   int
	now       func() time.Time
}

// NewMatchingService creates a new MatchingService instance
func NewMatchingService(
	items repository.ItemStore,
	matches repository.MatchStore,
	scorer *scoring.Scorer,
	policy *lifecycle.Policy,
	locks *keylock.Locker,
	notifier notify.Notifier,
	m *metrics.Metrics,
	opts Options,
) *MatchingService {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &MatchingService{
		items:     items,
		matches:   matches,
		scorer:    scorer,
		policy:    policy,
		locks:     locks,
		notifier:  notifier,
		metrics:   m,
		images:    opts.Images,
		threshold: opts.Threshold,
		workers:   opts.Workers,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used for timestamps
func (s *MatchingService) WithClock(now func() time.Time) *MatchingService {
	s.now = now
	return s
}

// RequestCandidates runs GenerateCandidates on behalf of actor, who must be
// allowed to review matches.
func (s *MatchingService) RequestCandidates(ctx context.Context, itemID string, actor models.Actor) ([]models.Match, error) {
	if !s.policy.Permits(actor, lifecycle.EdgeClaim) {
		return nil, fmt.Errorf("service: %w - user %q may not generate candidates", registryerrors.ErrUnauthorized, actor.UserID)
	}
	return s.GenerateCandidates(ctx, itemID)
}

// GenerateCandidates scores itemID against every open item of the opposite
// kind in a compatible category and persists the pairs at or above the
// threshold. Re-running it never duplicates a pair: PENDING rows get their
// score refreshed and reviewed rows are left alone. Pairs are scored in
// parallel; cancelling ctx stops the run between pairs, and every pair is
// persisted as one atomic unit. The returned candidates are the ones stored
// or refreshed by this run, best first.
func (s *MatchingService) GenerateCandidates(ctx context.Context, itemID string) ([]models.Match, error) {
	start := time.Now()
	defer s.metrics.ObserveCandidateGeneration(start)

	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load item %s: %w", itemID, err)
	}
	if !openForMatching(item.State) {
		return nil, fmt.Errorf("service: item %s is %s: %w", itemID, item.State, registryerrors.ErrInvalidState)
	}

	others, err := s.items.ListItems(ctx, repository.ItemFilter{
		Kind:            opposite(item.Kind),
		States:          []models.ItemState{models.StateRegistrado, models.StateEnAlmacen},
		CategoryOrUnset: item.CategoryID,
	})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list candidates for item %s: %w", itemID, err)
	}

	var (
		mu      sync.Mutex
		results []models.Match
		created int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, other := range others {
		if gctx.Err() != nil {
			break
		}
		other := other
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lost, found := item, other
			if item.Kind == models.KindFound {
				lost, found = other, item
			}

			res := s.scorer.Score(lost, found, s.imageSignal(gctx, lost, found))
			if res.Score < s.threshold {
				return nil
			}

			m, isNew, ok, err := s.persist(gctx, lost.ItemID, found.ItemID, res)
			if err != nil || !ok {
				return err
			}
			mu.Lock()
			results = append(results, m)
			if isNew {
				created++
			}
			mu.Unlock()
			return nil
		})
	}
	waitErr := g.Wait()
	if waitErr == nil {
		waitErr = ctx.Err()
	}

	s.metrics.IncrementMatchesCreated(created)
	sortMatches(results)

	if waitErr != nil {
		return results, fmt.Errorf("service: candidate generation for item %s stopped: %w", itemID, waitErr)
	}
	return results, nil
}

// persist inserts the pair or, when a row already exists, refreshes it if it
// is still PENDING. ok is false when the pair was reviewed and left alone.
func (s *MatchingService) persist(ctx context.Context, lostID, foundID string, res scoring.Result) (m models.Match, isNew, ok bool, err error) {
	now := s.now()
	m = models.Match{
		MatchID:         utils.GenerateID(),
		LostItemID:      lostID,
		FoundItemID:     foundID,
		Score:           res.Score,
		MatchedFeatures: res.MatchedFeatures,
		State:           models.ReviewPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.matches.InsertMatch(ctx, m)
	if err == nil {
		return m, true, true, nil
	}
	if !errors.Is(err, registryerrors.ErrConflict) {
		return models.Match{}, false, false, fmt.Errorf("service: failed to store match %s/%s: %w", lostID, foundID, err)
	}

	// another run owns the pair: re-read and refresh instead of failing
	existing, err := s.matches.GetMatchByPair(ctx, lostID, foundID)
	if err != nil {
		return models.Match{}, false, false, fmt.Errorf("service: failed to re-read match %s/%s: %w", lostID, foundID, err)
	}
	if existing.State != models.ReviewPending {
		return models.Match{}, false, false, nil
	}

	refreshed, err := s.matches.RefreshMatchScore(ctx, existing.MatchID, res.Score, res.MatchedFeatures, now)
	if errors.Is(err, registryerrors.ErrInvalidState) {
		return models.Match{}, false, false, nil
	}
	if err != nil {
		return models.Match{}, false, false, fmt.Errorf("service: failed to refresh match %s: %w", existing.MatchID, err)
	}
	return refreshed, false, true, nil
}

// imageSignal compares primary photos when an image capability is wired
func (s *MatchingService) imageSignal(ctx context.Context, lost, found models.Item) *float64 {
	if s.images == nil {
		return nil
	}
	a, okA := lost.PrimaryPhoto()
	b, okB := found.PrimaryPhoto()
	if !okA || !okB {
		return nil
	}

	v, ok, err := s.images.Similarity(ctx, a, b)
	if err != nil {
		utils.Warn("Image similarity unavailable", map[string]any{
			"lost_item_id":  lost.ItemID,
			"found_item_id": found.ItemID,
			"error":         err.Error(),
		})
		return nil
	}
	if !ok {
		return nil
	}
	return &v
}

// Confirm accepts a PENDING candidate and claims both items in one atomic step
func (s *MatchingService) Confirm(ctx context.Context, matchID string, actor models.Actor) (models.Match, error) {
	m, err := s.matches.GetMatch(ctx, matchID)
	if err != nil {
		return models.Match{}, fmt.Errorf("service: failed to confirm match %s: %w", matchID, err)
	}
	if !s.policy.Permits(actor, lifecycle.EdgeClaim) {
		return models.Match{}, fmt.Errorf("service: %w - user %q may not review matches", registryerrors.ErrUnauthorized, actor.UserID)
	}

	unlock := s.locks.LockMany(keylock.MatchKey(matchID), keylock.ItemKey(m.LostItemID), keylock.ItemKey(m.FoundItemID))
	defer unlock()

	claim := func(itemID string) models.ItemTransition {
		return models.ItemTransition{ItemID: itemID, From: lifecycle.ClaimSources, To: models.StateReclamado}
	}
	confirmed, err := s.matches.ConfirmMatch(ctx, matchID,
		[]models.ItemTransition{claim(m.LostItemID), claim(m.FoundItemID)},
		actor.UserID, s.now())
	if err != nil {
		return models.Match{}, fmt.Errorf("service: failed to confirm match %s: %w", matchID, err)
	}
	s.metrics.IncrementMatchReview("confirmed")

	utils.Info("Match confirmed", map[string]any{
		"match_id":      matchID,
		"lost_item_id":  m.LostItemID,
		"found_item_id": m.FoundItemID,
		"reviewed_by":   actor.UserID,
	})
	s.notifyOwner(ctx, confirmed)
	return confirmed, nil
}

func (s *MatchingService) notifyOwner(ctx context.Context, m models.Match) {
	lost, err := s.items.GetItem(ctx, m.LostItemID)
	if err != nil {
		utils.Warn("Match confirmed but lost item owner unavailable", map[string]any{"match_id": m.MatchID, "error": err.Error()})
		return
	}
	payload := map[string]any{
		"match_id":      m.MatchID,
		"lost_item_id":  m.LostItemID,
		"found_item_id": m.FoundItemID,
	}
	if found, err := s.items.GetItem(ctx, m.FoundItemID); err == nil {
		payload["registry_code"] = found.RegistryCode
	}
	s.notifier.Notify(ctx, lost.OwnerID, notify.EventMatchConfirmed, payload)
}

// Discard rejects a PENDING candidate; items are not touched
func (s *MatchingService) Discard(ctx context.Context, matchID string, actor models.Actor) (models.Match, error) {
	if _, err := s.matches.GetMatch(ctx, matchID); err != nil {
		return models.Match{}, fmt.Errorf("service: failed to discard match %s: %w", matchID, err)
	}
	if !s.policy.Permits(actor, lifecycle.EdgeClaim) {
		return models.Match{}, fmt.Errorf("service: %w - user %q may not review matches", registryerrors.ErrUnauthorized, actor.UserID)
	}

	unlock := s.locks.Lock(keylock.MatchKey(matchID))
	defer unlock()

	discarded, err := s.matches.DiscardMatch(ctx, matchID, actor.UserID, s.now())
	if err != nil {
		return models.Match{}, fmt.Errorf("service: failed to discard match %s: %w", matchID, err)
	}
	s.metrics.IncrementMatchReview("discarded")
	utils.Info("Match discarded", map[string]any{"match_id": matchID, "reviewed_by": actor.UserID})
	return discarded, nil
}

// ListMatches returns candidates in state (all when empty), best score first
func (s *MatchingService) ListMatches(ctx context.Context, state models.ReviewState) ([]models.Match, error) {
	switch state {
	case "", models.ReviewPending, models.ReviewConfirmed, models.ReviewDiscarded:
	default:
		return nil, fmt.Errorf("service: %w - unknown review state %q", registryerrors.ErrInvalidQuery, state)
	}

	matches, err := s.matches.ListMatches(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list matches: %w", err)
	}
	return matches, nil
}

// GetMatch returns one candidate
func (s *MatchingService) GetMatch(ctx context.Context, matchID string) (models.Match, error) {
	m, err := s.matches.GetMatch(ctx, matchID)
	if err != nil {
		return models.Match{}, fmt.Errorf("service: failed to get match %s: %w", matchID, err)
	}
	return m, nil
}

func openForMatching(s models.ItemState) bool {
	return s == models.StateRegistrado || s == models.StateEnAlmacen
}

func opposite(k models.ItemKind) models.ItemKind {
	if k == models.KindLost {
		return models.KindFound
	}
	return models.KindLost
}

func sortMatches(ms []models.Match) {
	sort.Slice(ms, func(i, j int) bool {
		if ms[i].Score != ms[j].Score {
			return ms[i].Score > ms[j].Score
		}
		if !ms[i].CreatedAt.Equal(ms[j].CreatedAt) {
			return ms[i].CreatedAt.Before(ms[j].CreatedAt)
		}
		return ms[i].MatchID < ms[j].MatchID
	})
}
