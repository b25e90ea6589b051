package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment statuses. Transitions are pending -> completed only.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Payment is the obligation owed by an auction winner. The composite
// unique index keeps settlement idempotent even when the sweeper and a
// read path race to settle the same auction.
type Payment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AuctionID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_payments_auction_user" json:"auction_id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_payments_auction_user" json:"user_id"`
	Amount    float64    `gorm:"not null" json:"amount"`
	Status    string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	PaidAt    *time.Time `json:"paid_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
