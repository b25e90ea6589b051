package services

import (
	"testing"
	"time"

	"github.com/electrobid/electrobid-api/internal/dto"
	"github.com/electrobid/electrobid-api/internal/models"
	"github.com/electrobid/electrobid-api/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuctionService(t *testing.T, db *gorm.DB) *AuctionService {
	t.Helper()
	images, err := storage.NewImageStore(t.TempDir())
	require.NoError(t, err)
	return NewAuctionService(db, images, NewLifecycleService(db))
}

func validCreateRequest() *dto.CreateAuctionRequest {
	return &dto.CreateAuctionRequest{
		Title:         "Angle Grinder",
		Description:   "900W angle grinder with spare discs",
		StartingPrice: 100,
		EndsAt:        time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339),
		Category:      "Tools",
		Condition:     "New",
		Brand:         "Bosch",
	}
}

func TestAuctionService_Create(t *testing.T) {
	db := newTestDB(t)
	service := newAuctionService(t, db)
	seller := createUser(t, db, models.RoleSeller)

	resp, err := service.Create(seller.ID, validCreateRequest(), nil)
	require.NoError(t, err)
	assert.Equal(t, 100.0, resp.StartingPrice)
	assert.Equal(t, 100.0, resp.CurrentPrice)
	assert.Equal(t, seller.ID, resp.SellerID)
	assert.Equal(t, seller.FullName, resp.SellerName)
	require.NotNil(t, resp.Brand)
	assert.Equal(t, "Bosch", *resp.Brand)
	assert.Nil(t, resp.ImageURL)
}

func TestAuctionService_CreateValidation(t *testing.T) {
	db := newTestDB(t)
	service := newAuctionService(t, db)
	seller := createUser(t, db, models.RoleSeller)

	tests := []struct {
		name    string
		mutate  func(*dto.CreateAuctionRequest)
		wantErr error
	}{
		{"missing_title", func(r *dto.CreateAuctionRequest) { r.Title = "  " }, ErrTitleRequired},
		{"missing_description", func(r *dto.CreateAuctionRequest) { r.Description = "" }, ErrDescriptionRequired},
		{"non_positive_price", func(r *dto.CreateAuctionRequest) { r.StartingPrice = 0 }, ErrInvalidPrice},
		{"unparseable_end_time", func(r *dto.CreateAuctionRequest) { r.EndsAt = "tomorrow" }, ErrInvalidEndTime},
		{
			"end_time_in_past",
			func(r *dto.CreateAuctionRequest) {
				r.EndsAt = time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
			},
			ErrInvalidEndTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)
			_, err := service.Create(seller.ID, req, nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuctionService_GetByID(t *testing.T) {
	db := newTestDB(t)
	service := newAuctionService(t, db)

	seller := createUser(t, db, models.RoleSeller)
	buyer := createUser(t, db, models.RoleBuyer)
	now := time.Now().UTC()

	auction := createAuction(t, db, seller.ID, 100, now.Add(-time.Minute))
	createBid(t, db, auction.ID, buyer.ID, 160, now.Add(-time.Hour))

	resp, err := service.GetByID(auction.ID)
	require.NoError(t, err)
	assert.Equal(t, auction.ID, resp.ID)
	assert.Equal(t, seller.FullName, resp.SellerName)

	// Reading an ended auction settled it.
	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Where("auction_id = ?", auction.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	_, err = service.GetByID(uuid.New())
	assert.ErrorIs(t, err, ErrAuctionNotFound)
}

func TestAuctionService_ListBySeller(t *testing.T) {
	db := newTestDB(t)
	service := newAuctionService(t, db)

	seller := createUser(t, db, models.RoleSeller)
	other := createUser(t, db, models.RoleSeller)
	now := time.Now().UTC()

	createAuction(t, db, seller.ID, 100, now.Add(time.Hour))
	createAuction(t, db, seller.ID, 100, now.Add(time.Hour))
	createAuction(t, db, other.ID, 100, now.Add(time.Hour))

	mine, err := service.ListBySeller(seller.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := service.List()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestAuctionService_Delete(t *testing.T) {
	db := newTestDB(t)
	service := newAuctionService(t, db)

	seller := createUser(t, db, models.RoleSeller)
	stranger := createUser(t, db, models.RoleSeller)
	admin := createUser(t, db, models.RoleAdmin)
	now := time.Now().UTC()

	auction := createAuction(t, db, seller.ID, 100, now.Add(time.Hour))
	createBid(t, db, auction.ID, stranger.ID, 120, now)

	// A different seller cannot delete it.
	err := service.Delete(auction.ID, stranger.ID, models.RoleSeller)
	assert.ErrorIs(t, err, ErrAuctionNotFound)

	// The owner can; dependent bids go with it.
	require.NoError(t, service.Delete(auction.ID, seller.ID, models.RoleSeller))

	var bidCount int64
	require.NoError(t, db.Model(&models.Bid{}).Where("auction_id = ?", auction.ID).Count(&bidCount).Error)
	assert.Zero(t, bidCount)

	// Admin deletes any auction.
	second := createAuction(t, db, seller.ID, 100, now.Add(time.Hour))
	require.NoError(t, service.Delete(second.ID, admin.ID, models.RoleAdmin))

	err = service.Delete(uuid.New(), admin.ID, models.RoleAdmin)
	assert.ErrorIs(t, err, ErrAuctionNotFound)
}
