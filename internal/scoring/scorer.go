// Package scoring computes the similarity between a lost and a found item.
// Scores are deterministic: the same inputs always yield the same result.
package scoring

import (
	"errors"
	"fmt"
	"math"

	model "lostfound-registry/internal/models"
)

// MaxScore is the score of a pair that matches on every feature
const MaxScore = 100.0

// Weights are the per-feature shares of MaxScore
type Weights struct {
	Category    float64 `yaml:"category"`
	Color       float64 `yaml:"color"`
	BrandModel  float64 `yaml:"brand_model"`
	Description float64 `yaml:"description"`
	Image       float64 `yaml:"image"`
}

// DefaultWeights returns the stock weighting
func DefaultWeights() Weights {
	return Weights{Category: 30, Color: 15, BrandModel: 20, Description: 20, Image: 15}
}

func (w Weights) sum() float64 {
	return w.Category + w.Color + w.BrandModel + w.Description + w.Image
}

// Result is a score in [0, MaxScore] with the features that contributed to it
type Result struct {
	Score           float64         `json:"score"`
	MatchedFeatures []model.Feature `json:"matched_features"`
}

// Scorer holds the tunables of the weighted feature model. It has no other
// state and is safe for concurrent use.
type Scorer struct {
	weights Weights
	noise   float64
}

// New validates the weights and rescales them so they add up to MaxScore.
// noise is the contribution, in score points, a feature must exceed to be
// listed in Result.MatchedFeatures.
func New(weights Weights, noise float64) (*Scorer, error) {
	for _, w := range []float64{weights.Category, weights.Color, weights.BrandModel, weights.Description, weights.Image} {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("scoring: invalid weight %v", w)
		}
	}
	total := weights.sum()
	if total == 0 {
		return nil, errors.New("scoring: weights add up to zero")
	}
	if noise < 0 {
		return nil, fmt.Errorf("scoring: negative noise threshold %v", noise)
	}

	k := MaxScore / total
	return &Scorer{
		weights: Weights{
			Category:    weights.Category * k,
			Color:       weights.Color * k,
			BrandModel:  weights.BrandModel * k,
			Description: weights.Description * k,
			Image:       weights.Image * k,
		},
		noise: noise,
	}, nil
}

// Weights returns the rescaled weights in use
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score compares one lost and one found item. imageSignal is the optional
// external image similarity in [0, 1]; when nil the image weight is spread
// across the other features in proportion to their own weights.
func (s *Scorer) Score(lost, found model.Item, imageSignal *float64) Result {
	w := s.weights
	if imageSignal == nil {
		rest := MaxScore - w.Image
		if rest <= 0 {
			return Result{MatchedFeatures: []model.Feature{}}
		}
		k := MaxScore / rest
		w = Weights{
			Category:    w.Category * k,
			Color:       w.Color * k,
			BrandModel:  w.BrandModel * k,
			Description: w.Description * k,
		}
	}

	contributions := []struct {
		feature model.Feature
		points  float64
	}{
		{model.FeatureCategory, w.Category * categorySimilarity(lost, found)},
		{model.FeatureColor, w.Color * colorSimilarity(lost, found)},
		{model.FeatureBrandModel, w.BrandModel * brandModelSimilarity(lost, found)},
		{model.FeatureDescription, w.Description * descriptionSimilarity(lost, found)},
	}
	if imageSignal != nil {
		contributions = append(contributions, struct {
			feature model.Feature
			points  float64
		}{model.FeatureImage, w.Image * clamp01(*imageSignal)})
	}

	total := 0.0
	matched := make([]model.Feature, 0, len(contributions))
	for _, c := range contributions {
		total += c.points
		if c.points > s.noise {
			matched = append(matched, c.feature)
		}
	}

	return Result{Score: round2(math.Min(total, MaxScore)), MatchedFeatures: matched}
}

func categorySimilarity(a, b model.Item) float64 {
	if a.CategoryID == "" || b.CategoryID == "" {
		return 0
	}
	if fold(a.CategoryID) == fold(b.CategoryID) {
		return 1
	}
	return 0
}

func colorSimilarity(a, b model.Item) float64 {
	ca, cb := canonicalColor(a.Color), canonicalColor(b.Color)
	if ca == "" || cb == "" {
		return 0
	}
	if ca == cb {
		return 1
	}
	return 0
}

func brandModelSimilarity(a, b model.Item) float64 {
	return jaccard(tokenSet(a.Brand, a.Model), tokenSet(b.Brand, b.Model))
}

func descriptionSimilarity(a, b model.Item) float64 {
	return jaccard(tokenSet(a.Title, a.Description), tokenSet(b.Title, b.Description))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
