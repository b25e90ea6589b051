package models

import (
	"time"

	"github.com/google/uuid"
)

// Auction is a time-boxed listing with a rising price driven by bids.
// CurrentPrice only ever increases; EndsAt is immutable after creation.
type Auction struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string    `gorm:"size:200;not null" json:"title"`
	Description   string    `gorm:"size:2000;not null" json:"description"`
	StartingPrice float64   `gorm:"not null" json:"starting_price"`
	CurrentPrice  float64   `gorm:"not null" json:"current_price"`
	EndsAt        time.Time `gorm:"not null;index" json:"ends_at"`

	// Free-form product attributes.
	Category  string  `gorm:"size:100" json:"category"`
	Condition string  `gorm:"size:100" json:"condition"`
	Brand     *string `gorm:"size:100" json:"brand,omitempty"`
	Voltage   *string `gorm:"size:50" json:"voltage,omitempty"`
	Power     *string `gorm:"size:50" json:"power,omitempty"`
	Warranty  *string `gorm:"size:100" json:"warranty,omitempty"`
	ImageURL  *string `gorm:"size:255" json:"image_url,omitempty"`

	SellerID uuid.UUID `gorm:"type:uuid;not null;index" json:"seller_id"`
	Seller   *User     `gorm:"foreignKey:SellerID" json:"-"`

	Bids     []Bid     `gorm:"foreignKey:AuctionID;constraint:OnDelete:CASCADE" json:"-"`
	Payments []Payment `gorm:"foreignKey:AuctionID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
