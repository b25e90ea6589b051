package models

import (
	"time"

	"github.com/google/uuid"
)

// Bid is immutable once created.
type Bid struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuctionID uuid.UUID `gorm:"type:uuid;not null;index" json:"auction_id"`
	BidderID  uuid.UUID `gorm:"type:uuid;not null;index" json:"bidder_id"`
	Amount    float64   `gorm:"not null" json:"amount"`
	PlacedAt  time.Time `gorm:"not null" json:"placed_at"`

	Bidder *User `gorm:"foreignKey:BidderID" json:"-"`
}
