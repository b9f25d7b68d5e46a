package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	model "lostfound-registry/internal/models"
	"lostfound-registry/internal/registryerrors"
)

// InsertMatch stores a new candidate. A second row for the same
// (lost, found) pair is rejected with ErrConflict.
func (r *MemoryRepo) InsertMatch(ctx context.Context, match model.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey{lost: match.LostItemID, found: match.FoundItemID}
	if existing, ok := r.pairs[key]; ok {
		return fmt.Errorf("insert match for pair %s/%s (existing %s): %w", key.lost, key.found, existing, registryerrors.ErrConflict)
	}
	if _, ok := r.matches[match.MatchID]; ok {
		return fmt.Errorf("insert match %s: %w", match.MatchID, registryerrors.ErrConflict)
	}

	r.matches[match.MatchID] = cloneMatch(match)
	r.pairs[key] = match.MatchID
	return nil
}

// GetMatch returns one candidate by id
func (r *MemoryRepo) GetMatch(ctx context.Context, matchID string) (model.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.matches[matchID]
	if !ok {
		return model.Match{}, fmt.Errorf("get match %s: %w", matchID, registryerrors.ErrNotFound)
	}
	return cloneMatch(m), nil
}

// GetMatchByPair returns the candidate for a (lost, found) pair
func (r *MemoryRepo) GetMatchByPair(ctx context.Context, lostItemID, foundItemID string) (model.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.pairs[pairKey{lost: lostItemID, found: foundItemID}]
	if !ok {
		return model.Match{}, fmt.Errorf("get match for pair %s/%s: %w", lostItemID, foundItemID, registryerrors.ErrNotFound)
	}
	return cloneMatch(r.matches[id]), nil
}

// RefreshMatchScore rewrites the score of a PENDING candidate. Reviewed
// candidates are left untouched and reported as ErrInvalidState.
func (r *MemoryRepo) RefreshMatchScore(ctx context.Context, matchID string, score float64, features []model.Feature, at time.Time) (model.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.matches[matchID]
	if !ok {
		return model.Match{}, fmt.Errorf("refresh match %s: %w", matchID, registryerrors.ErrNotFound)
	}
	if m.State != model.ReviewPending {
		return cloneMatch(m), fmt.Errorf("refresh match %s in state %s: %w", matchID, m.State, registryerrors.ErrInvalidState)
	}

	m.Score = score
	m.MatchedFeatures = append([]model.Feature(nil), features...)
	m.UpdatedAt = at
	r.matches[matchID] = m
	return cloneMatch(m), nil
}

// ListMatches returns candidates in the given state (all when empty),
// ordered by score descending then creation time ascending.
func (r *MemoryRepo) ListMatches(ctx context.Context, state model.ReviewState) ([]model.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Match, 0)
	for _, m := range r.matches {
		if state != "" && m.State != state {
			continue
		}
		out = append(out, cloneMatch(m))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].MatchID < out[j].MatchID
	})
	return out, nil
}

// ConfirmMatch moves a PENDING candidate to CONFIRMED and applies the item
// transitions in the same critical section; either all land or none.
func (r *MemoryRepo) ConfirmMatch(ctx context.Context, matchID string, transitions []model.ItemTransition, reviewer string, at time.Time) (model.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.matches[matchID]
	if !ok {
		return model.Match{}, fmt.Errorf("confirm match %s: %w", matchID, registryerrors.ErrNotFound)
	}
	if m.State != model.ReviewPending {
		return model.Match{}, fmt.Errorf("confirm match %s in state %s: %w", matchID, m.State, registryerrors.ErrInvalidState)
	}
	if err := r.checkTransitionsLocked(transitions); err != nil {
		return model.Match{}, fmt.Errorf("confirm match %s: %w", matchID, err)
	}
	if err := r.checkNotAuctionedLocked(transitions); err != nil {
		return model.Match{}, fmt.Errorf("confirm match %s: %w", matchID, err)
	}

	r.applyTransitionsLocked(transitions, at)
	m = reviewed(m, model.ReviewConfirmed, reviewer, at)
	r.matches[matchID] = m
	return cloneMatch(m), nil
}

// DiscardMatch moves a PENDING candidate to DISCARDED
func (r *MemoryRepo) DiscardMatch(ctx context.Context, matchID, reviewer string, at time.Time) (model.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.matches[matchID]
	if !ok {
		return model.Match{}, fmt.Errorf("discard match %s: %w", matchID, registryerrors.ErrNotFound)
	}
	if m.State != model.ReviewPending {
		return model.Match{}, fmt.Errorf("discard match %s in state %s: %w", matchID, m.State, registryerrors.ErrInvalidState)
	}

	m = reviewed(m, model.ReviewDiscarded, reviewer, at)
	r.matches[matchID] = m
	return cloneMatch(m), nil
}

func reviewed(m model.Match, state model.ReviewState, reviewer string, at time.Time) model.Match {
	m.State = state
	m.ReviewedBy = reviewer
	m.ReviewedAt = &at
	m.UpdatedAt = at
	return m
}

func cloneMatch(m model.Match) model.Match {
	m.MatchedFeatures = append(make([]model.Feature, 0, len(m.MatchedFeatures)), m.MatchedFeatures...)
	if m.ReviewedAt != nil {
		at := *m.ReviewedAt
		m.ReviewedAt = &at
	}
	return m
}
