package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/electrobid/electrobid-api/internal/dto"
	"github.com/electrobid/electrobid-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAuctionEnded  = errors.New("auction has already ended")
	ErrBidTooLow     = errors.New("bid is not higher than the current price")
	ErrSellerOwnBid  = errors.New("you cannot bid on your own auction")
	ErrInvalidAmount = errors.New("bid amount must be greater than zero")
)

type BidService struct {
	db        *gorm.DB
	lifecycle *LifecycleService
}

func NewBidService(db *gorm.DB, lifecycle *LifecycleService) *BidService {
	return &BidService{db: db, lifecycle: lifecycle}
}

// Place validates and records a bid, raising the auction's current price.
// The price update is a guarded conditional write: when two bids race,
// the losing writer is rejected instead of silently clobbering a higher
// price.
func (s *BidService) Place(bidderID uuid.UUID, req *dto.CreateBidRequest) (*dto.BidResponse, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var bid models.Bid
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var auction models.Auction
		if err := tx.First(&auction, "id = ?", req.AuctionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAuctionNotFound
			}
			return fmt.Errorf("failed to load auction: %w", err)
		}

		now := time.Now().UTC()
		if now.After(auction.EndsAt) {
			return ErrAuctionEnded
		}
		if auction.SellerID == bidderID {
			return ErrSellerOwnBid
		}

		minPrice := auction.CurrentPrice
		if minPrice <= 0 {
			minPrice = auction.StartingPrice
		}
		if req.Amount <= minPrice {
			return fmt.Errorf("%w: current price is %.2f", ErrBidTooLow, minPrice)
		}

		bid = models.Bid{
			ID:        uuid.New(),
			AuctionID: auction.ID,
			BidderID:  bidderID,
			Amount:    req.Amount,
			PlacedAt:  now,
		}
		if err := tx.Create(&bid).Error; err != nil {
			return fmt.Errorf("failed to record bid: %w", err)
		}

		// current_price only moves up; a concurrent higher bid makes this
		// a no-op and the whole placement rolls back.
		result := tx.Model(&models.Auction{}).
			Where("id = ? AND current_price < ?", auction.ID, req.Amount).
			Update("current_price", req.Amount)
		if result.Error != nil {
			return fmt.Errorf("failed to update current price: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: a higher bid was placed first", ErrBidTooLow)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var bidder models.User
	bidderName := "Unknown"
	if err := s.db.First(&bidder, "id = ?", bidderID).Error; err == nil {
		bidderName = bidder.FullName
	}

	resp := mapBidToResponse(&bid)
	resp.BidderName = bidderName
	return resp, nil
}

// ListByAuction returns an auction's bids, newest first. The auction is
// settled first so an ended auction's winner payment exists by the time
// anyone inspects the bid history.
func (s *BidService) ListByAuction(auctionID uuid.UUID) ([]dto.BidResponse, error) {
	if _, err := s.lifecycle.Settle(auctionID); err != nil {
		return nil, err
	}

	var bids []models.Bid
	if err := s.db.Preload("Bidder").
		Where("auction_id = ?", auctionID).
		Order("placed_at DESC").
		Find(&bids).Error; err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}

	return mapBidsToResponses(bids), nil
}

func (s *BidService) ListByBidder(bidderID uuid.UUID) ([]dto.BidResponse, error) {
	var bids []models.Bid
	if err := s.db.Preload("Bidder").
		Where("bidder_id = ?", bidderID).
		Order("placed_at DESC").
		Find(&bids).Error; err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}

	return mapBidsToResponses(bids), nil
}

func mapBidsToResponses(bids []models.Bid) []dto.BidResponse {
	resp := make([]dto.BidResponse, len(bids))
	for i := range bids {
		r := mapBidToResponse(&bids[i])
		if bids[i].Bidder != nil {
			r.BidderName = bids[i].Bidder.FullName
		}
		resp[i] = *r
	}
	return resp
}

func mapBidToResponse(b *models.Bid) *dto.BidResponse {
	return &dto.BidResponse{
		ID:         b.ID,
		AuctionID:  b.AuctionID,
		BidderID:   b.BidderID,
		BidderName: "Unknown",
		Amount:     b.Amount,
		PlacedAt:   b.PlacedAt,
	}
}
