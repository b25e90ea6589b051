package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePaymentRequest struct {
	AuctionID uuid.UUID `json:"auction_id"`
	Amount    float64   `json:"amount"`
}

type PaymentResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	AuctionID uuid.UUID  `json:"auction_id"`
	Amount    float64    `json:"amount"`
	Status    string     `json:"status"`
	PaidAt    *time.Time `json:"paid_at"`
	CreatedAt time.Time  `json:"created_at"`
}
