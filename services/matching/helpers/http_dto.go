package helpers

import model "lostfound-registry/internal/models"

// ListMatchesQuery is the query string of GET /matches
type ListMatchesQuery struct {
	State string `form:"state"`
}

// CandidatesResponse is returned by candidate generation
type CandidatesResponse struct {
	ItemID  string        `json:"item_id"`
	Count   int           `json:"count"`
	Matches []model.Match `json:"matches"`
}
