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
	ErrPaymentNotFound         = errors.New("payment not found")
	ErrPaymentAlreadyCompleted = errors.New("payment has already been completed")
	ErrPaymentNotPending       = errors.New("payment is not pending")
	ErrPaymentExists           = errors.New("a payment for this auction already exists")
)

type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// Create records a manual pending payment for an auction. Settlement
// normally does this automatically; the endpoint mirrors it for clients
// that create the obligation explicitly.
func (s *PaymentService) Create(buyerID uuid.UUID, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var auction models.Auction
	if err := s.db.First(&auction, "id = ?", req.AuctionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuctionNotFound
		}
		return nil, fmt.Errorf("failed to load auction: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.Payment{}).
		Where("auction_id = ? AND user_id = ?", req.AuctionID, buyerID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrPaymentExists
	}

	payment := models.Payment{
		ID:        uuid.New(),
		AuctionID: req.AuctionID,
		UserID:    buyerID,
		Amount:    req.Amount,
		Status:    models.PaymentPending,
	}

	if err := s.db.Create(&payment).Error; err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	return mapPaymentToResponse(&payment), nil
}

// MarkPaid completes a pending payment owned by the caller. Completion is
// one-way; a second call is rejected, not ignored.
func (s *PaymentService) MarkPaid(paymentID, buyerID uuid.UUID) (*dto.PaymentResponse, error) {
	var payment models.Payment
	if err := s.db.Where("id = ? AND user_id = ?", paymentID, buyerID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}

	switch payment.Status {
	case models.PaymentCompleted:
		return nil, ErrPaymentAlreadyCompleted
	case models.PaymentPending:
	default:
		return nil, ErrPaymentNotPending
	}

	now := time.Now().UTC()
	result := s.db.Model(&payment).
		Where("status = ?", models.PaymentPending).
		Updates(map[string]interface{}{"status": models.PaymentCompleted, "paid_at": now})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to complete payment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrPaymentAlreadyCompleted
	}

	payment.Status = models.PaymentCompleted
	payment.PaidAt = &now
	return mapPaymentToResponse(&payment), nil
}

func (s *PaymentService) GetByID(id uuid.UUID) (*dto.PaymentResponse, error) {
	var payment models.Payment
	if err := s.db.First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return mapPaymentToResponse(&payment), nil
}

func (s *PaymentService) ListAll() ([]dto.PaymentResponse, error) {
	var payments []models.Payment
	if err := s.db.Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return mapPaymentsToResponses(payments), nil
}

func (s *PaymentService) ListByBuyer(buyerID uuid.UUID) ([]dto.PaymentResponse, error) {
	var payments []models.Payment
	if err := s.db.Where("user_id = ?", buyerID).Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return mapPaymentsToResponses(payments), nil
}

func (s *PaymentService) ListByAuction(auctionID uuid.UUID) ([]dto.PaymentResponse, error) {
	var payments []models.Payment
	if err := s.db.Where("auction_id = ?", auctionID).Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return mapPaymentsToResponses(payments), nil
}

func mapPaymentsToResponses(payments []models.Payment) []dto.PaymentResponse {
	resp := make([]dto.PaymentResponse, len(payments))
	for i := range payments {
		resp[i] = *mapPaymentToResponse(&payments[i])
	}
	return resp
}

func mapPaymentToResponse(p *models.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		AuctionID: p.AuctionID,
		Amount:    p.Amount,
		Status:    p.Status,
		PaidAt:    p.PaidAt,
		CreatedAt: p.CreatedAt,
	}
}
