package helpers

import (
	"time"

	model "lostfound-registry/internal/models"
)

// Request/Response DTOs
type RegisterItemRequest struct {
	Title             string          `json:"title" binding:"required"`
	CategoryID        string          `json:"category_id" binding:"required"`
	Description       string          `json:"description"`
	Brand             string          `json:"brand"`
	Model             string          `json:"model"`
	Color             string          `json:"color"`
	Serial            string          `json:"serial"`
	WarehouseLocation string          `json:"warehouse_location"`
	Location          *model.GeoPoint `json:"location"`
	FoundAt           *time.Time      `json:"found_at"`
}

type TransitionRequest struct {
	Target string `json:"target" binding:"required"`
}

type AddPhotoRequest struct {
	URL     string `json:"url" binding:"required"`
	Primary bool   `json:"primary"`
}

// ToItem copies the request into an item draft
func (r RegisterItemRequest) ToItem() model.Item {
	return model.Item{
		Title:             r.Title,
		CategoryID:        r.CategoryID,
		Description:       r.Description,
		Brand:             r.Brand,
		Model:             r.Model,
		Color:             r.Color,
		Serial:            r.Serial,
		WarehouseLocation: r.WarehouseLocation,
		Location:          r.Location,
		FoundAt:           r.FoundAt,
	}
}
