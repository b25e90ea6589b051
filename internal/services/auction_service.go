package services

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"
	"time"

	"github.com/electrobid/electrobid-api/internal/dto"
	"github.com/electrobid/electrobid-api/internal/models"
	"github.com/electrobid/electrobid-api/internal/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrInvalidPrice        = errors.New("starting price must be greater than zero")
	ErrInvalidEndTime      = errors.New("end time must be a future RFC3339 timestamp")
)

type AuctionService struct {
	db        *gorm.DB
	images    *storage.ImageStore
	lifecycle *LifecycleService
}

func NewAuctionService(db *gorm.DB, images *storage.ImageStore, lifecycle *LifecycleService) *AuctionService {
	return &AuctionService{db: db, images: images, lifecycle: lifecycle}
}

func (s *AuctionService) Create(sellerID uuid.UUID, req *dto.CreateAuctionRequest, image *multipart.FileHeader) (*dto.AuctionResponse, error) {
	endsAt, err := validateAuctionInput(req)
	if err != nil {
		return nil, err
	}

	var imageURL *string
	if image != nil && image.Size > 0 {
		url, err := s.images.SaveAuctionImage(image)
		if err != nil {
			return nil, err
		}
		imageURL = &url
	}

	auction := models.Auction{
		ID:            uuid.New(),
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		StartingPrice: req.StartingPrice,
		CurrentPrice:  req.StartingPrice,
		EndsAt:        endsAt,
		Category:      req.Category,
		Condition:     req.Condition,
		Brand:         optional(req.Brand),
		Voltage:       optional(req.Voltage),
		Power:         optional(req.Power),
		Warranty:      optional(req.Warranty),
		ImageURL:      imageURL,
		SellerID:      sellerID,
	}

	if err := s.db.Create(&auction).Error; err != nil {
		return nil, fmt.Errorf("failed to create auction: %w", err)
	}

	var seller models.User
	if err := s.db.First(&seller, "id = ?", sellerID).Error; err == nil {
		auction.Seller = &seller
	}

	return mapAuctionToResponse(&auction), nil
}

// List returns all auctions. Expired ones are settled first so winners
// see their pending payment without waiting for the sweeper.
func (s *AuctionService) List() ([]dto.AuctionResponse, error) {
	var auctions []models.Auction
	if err := s.db.Preload("Seller").Order("created_at DESC").Find(&auctions).Error; err != nil {
		return nil, fmt.Errorf("failed to list auctions: %w", err)
	}

	s.settleExpired(auctions)

	resp := make([]dto.AuctionResponse, len(auctions))
	for i := range auctions {
		resp[i] = *mapAuctionToResponse(&auctions[i])
	}
	return resp, nil
}

func (s *AuctionService) GetByID(id uuid.UUID) (*dto.AuctionResponse, error) {
	if _, err := s.lifecycle.Settle(id); err != nil {
		if errors.Is(err, ErrAuctionNotFound) {
			return nil, ErrAuctionNotFound
		}
		slog.Error("settlement on read failed", "auction_id", id, "error", err)
	}

	var auction models.Auction
	if err := s.db.Preload("Seller").First(&auction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuctionNotFound
		}
		return nil, fmt.Errorf("failed to load auction: %w", err)
	}

	return mapAuctionToResponse(&auction), nil
}

func (s *AuctionService) ListBySeller(sellerID uuid.UUID) ([]dto.AuctionResponse, error) {
	var auctions []models.Auction
	if err := s.db.Preload("Seller").
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&auctions).Error; err != nil {
		return nil, fmt.Errorf("failed to list seller auctions: %w", err)
	}

	s.settleExpired(auctions)

	resp := make([]dto.AuctionResponse, len(auctions))
	for i := range auctions {
		resp[i] = *mapAuctionToResponse(&auctions[i])
	}
	return resp, nil
}

// Delete removes an auction. Sellers can only delete their own; admins
// can delete any. The stored image file goes with it.
func (s *AuctionService) Delete(id, requesterID uuid.UUID, role string) error {
	query := s.db.Where("id = ?", id)
	if role != models.RoleAdmin {
		query = query.Where("seller_id = ?", requesterID)
	}

	var auction models.Auction
	if err := query.First(&auction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAuctionNotFound
		}
		return fmt.Errorf("failed to load auction: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("auction_id = ?", auction.ID).Delete(&models.Bid{}).Error; err != nil {
			return err
		}
		if err := tx.Where("auction_id = ?", auction.ID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&auction).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete auction: %w", err)
	}

	if auction.ImageURL != nil {
		if err := s.images.Remove(*auction.ImageURL); err != nil {
			slog.Error("failed to remove auction image", "auction_id", auction.ID, "error", err)
		}
	}

	return nil
}

func (s *AuctionService) settleExpired(auctions []models.Auction) {
	now := time.Now().UTC()
	for i := range auctions {
		if now.Before(auctions[i].EndsAt) {
			continue
		}
		if _, err := s.lifecycle.Settle(auctions[i].ID); err != nil {
			slog.Error("settlement on read failed", "auction_id", auctions[i].ID, "error", err)
		}
	}
}

func validateAuctionInput(req *dto.CreateAuctionRequest) (time.Time, error) {
	if strings.TrimSpace(req.Title) == "" {
		return time.Time{}, ErrTitleRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		return time.Time{}, ErrDescriptionRequired
	}
	if req.StartingPrice <= 0 {
		return time.Time{}, ErrInvalidPrice
	}

	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil || !endsAt.After(time.Now().UTC()) {
		return time.Time{}, ErrInvalidEndTime
	}
	return endsAt.UTC(), nil
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func mapAuctionToResponse(a *models.Auction) *dto.AuctionResponse {
	sellerName := "Unknown"
	if a.Seller != nil {
		sellerName = a.Seller.FullName
	}

	return &dto.AuctionResponse{
		ID:            a.ID,
		Title:         a.Title,
		Description:   a.Description,
		StartingPrice: a.StartingPrice,
		CurrentPrice:  a.CurrentPrice,
		EndsAt:        a.EndsAt,
		CreatedAt:     a.CreatedAt,
		SellerID:      a.SellerID,
		SellerName:    sellerName,
		Category:      a.Category,
		Condition:     a.Condition,
		Brand:         a.Brand,
		Voltage:       a.Voltage,
		Power:         a.Power,
		Warranty:      a.Warranty,
		ImageURL:      a.ImageURL,
	}
}
