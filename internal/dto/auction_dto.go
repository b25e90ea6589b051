package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateAuctionRequest is bound from multipart form fields; the optional
// image file is read separately from the request. EndsAt is RFC3339.
type CreateAuctionRequest struct {
	Title         string  `form:"title"`
	Description   string  `form:"description"`
	StartingPrice float64 `form:"starting_price"`
	EndsAt        string  `form:"ends_at"`
	Category      string  `form:"category"`
	Condition     string  `form:"condition"`
	Brand         string  `form:"brand"`
	Voltage       string  `form:"voltage"`
	Power         string  `form:"power"`
	Warranty      string  `form:"warranty"`
}

type AuctionResponse struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartingPrice float64   `json:"starting_price"`
	CurrentPrice  float64   `json:"current_price"`
	EndsAt        time.Time `json:"ends_at"`
	CreatedAt     time.Time `json:"created_at"`
	SellerID      uuid.UUID `json:"seller_id"`
	SellerName    string    `json:"seller_name"`
	Category      string    `json:"category"`
	Condition     string    `json:"condition"`
	Brand         *string   `json:"brand,omitempty"`
	Voltage       *string   `json:"voltage,omitempty"`
	Power         *string   `json:"power,omitempty"`
	Warranty      *string   `json:"warranty,omitempty"`
	ImageURL      *string   `json:"image_url,omitempty"`
}
