package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBidRequest struct {
	AuctionID uuid.UUID `json:"auction_id"`
	Amount    float64   `json:"amount"`
}

type BidResponse struct {
	ID         uuid.UUID `json:"id"`
	AuctionID  uuid.UUID `json:"auction_id"`
	BidderID   uuid.UUID `json:"bidder_id"`
	BidderName string    `json:"bidder_name"`
	Amount     float64   `json:"amount"`
	PlacedAt   time.Time `json:"placed_at"`
}
