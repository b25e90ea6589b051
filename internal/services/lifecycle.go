package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/electrobid/electrobid-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrAuctionNotFound = errors.New("auction not found")

// Outcome classifies an auction's settlement state.
type Outcome int

const (
	OutcomeOpen Outcome = iota
	OutcomeEndedNoBids
	OutcomeEndedWithWinner
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOpen:
		return "open"
	case OutcomeEndedNoBids:
		return "ended_no_bids"
	case OutcomeEndedWithWinner:
		return "ended_with_winner"
	default:
		return "unknown"
	}
}

// Settlement is the evaluator's decision for one auction. WinningBid is
// set only for OutcomeEndedWithWinner.
type Settlement struct {
	Outcome    Outcome
	WinningBid *models.Bid
}

// DecideOutcome applies the lifecycle rule to an auction and its bids:
// still open before EndsAt, ended without bids, or ended with the
// highest bid as winner. Ties on amount go to the earliest bid.
func DecideOutcome(auction *models.Auction, bids []models.Bid, now time.Time) Settlement {
	if now.Before(auction.EndsAt) {
		return Settlement{Outcome: OutcomeOpen}
	}
	if len(bids) == 0 {
		return Settlement{Outcome: OutcomeEndedNoBids}
	}

	winner := &bids[0]
	for i := 1; i < len(bids); i++ {
		b := &bids[i]
		if b.Amount > winner.Amount ||
			(b.Amount == winner.Amount && b.PlacedAt.Before(winner.PlacedAt)) {
			winner = b
		}
	}

	return Settlement{Outcome: OutcomeEndedWithWinner, WinningBid: winner}
}

// LifecycleService is the single settlement path for ended auctions. Both
// the read handlers and the background sweeper go through it.
type LifecycleService struct {
	db *gorm.DB
}

func NewLifecycleService(db *gorm.DB) *LifecycleService {
	return &LifecycleService{db: db}
}

// Settle evaluates one auction and, if it ended with a winner, ensures a
// single pending payment exists for the winning bidder. Safe to call any
// number of times; the payments table's (auction_id, user_id) unique
// index backstops concurrent callers.
func (s *LifecycleService) Settle(auctionID uuid.UUID) (Settlement, error) {
	var auction models.Auction
	if err := s.db.First(&auction, "id = ?", auctionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Settlement{}, ErrAuctionNotFound
		}
		return Settlement{}, fmt.Errorf("failed to load auction: %w", err)
	}

	var bids []models.Bid
	if err := s.db.Where("auction_id = ?", auctionID).Find(&bids).Error; err != nil {
		return Settlement{}, fmt.Errorf("failed to load bids: %w", err)
	}

	settlement := DecideOutcome(&auction, bids, time.Now().UTC())
	if settlement.Outcome != OutcomeEndedWithWinner {
		return settlement, nil
	}

	winning := settlement.WinningBid
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Payment{}).
			Where("auction_id = ? AND user_id = ?", auction.ID, winning.BidderID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		payment := models.Payment{
			ID:        uuid.New(),
			AuctionID: auction.ID,
			UserID:    winning.BidderID,
			Amount:    winning.Amount,
			Status:    models.PaymentPending,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		slog.Info("payment created for auction winner",
			"auction_id", auction.ID, "winner_id", winning.BidderID, "amount", winning.Amount)
		return nil
	})
	if err != nil {
		return settlement, fmt.Errorf("failed to settle auction %s: %w", auction.ID, err)
	}

	return settlement, nil
}

// SettleDue settles every auction whose end time has passed. Per-auction
// failures are logged and skipped so one bad row cannot stall the rest.
func (s *LifecycleService) SettleDue() error {
	var ids []uuid.UUID
	if err := s.db.Model(&models.Auction{}).
		Where("ends_at < ?", time.Now().UTC()).
		Pluck("id", &ids).Error; err != nil {
		return fmt.Errorf("failed to scan ended auctions: %w", err)
	}

	for _, id := range ids {
		if _, err := s.Settle(id); err != nil {
			slog.Error("auction settlement failed", "auction_id", id, "error", err)
		}
	}
	return nil
}
