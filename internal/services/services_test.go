package services

import (
	"testing"
	"time"

	"github.com/electrobid/electrobid-api/internal/config"
	"github.com/electrobid/electrobid-api/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Auction{},
		&models.Bid{},
		&models.Payment{},
	))

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}
}

func createUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		ID:       uuid.New(),
		FullName: "Test " + role,
		Email:    uuid.New().String() + "@example.com",
		Password: string(hash),
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createAuction(t *testing.T, db *gorm.DB, sellerID uuid.UUID, startingPrice float64, endsAt time.Time) *models.Auction {
	t.Helper()

	auction := models.Auction{
		ID:            uuid.New(),
		Title:         "Cordless Drill",
		Description:   "18V cordless drill, barely used",
		StartingPrice: startingPrice,
		CurrentPrice:  startingPrice,
		EndsAt:        endsAt,
		Category:      "Tools",
		Condition:     "Used",
		SellerID:      sellerID,
	}
	require.NoError(t, db.Create(&auction).Error)
	return &auction
}

func createBid(t *testing.T, db *gorm.DB, auctionID, bidderID uuid.UUID, amount float64, placedAt time.Time) *models.Bid {
	t.Helper()

	bid := models.Bid{
		ID:        uuid.New(),
		AuctionID: auctionID,
		BidderID:  bidderID,
		Amount:    amount,
		PlacedAt:  placedAt,
	}
	require.NoError(t, db.Create(&bid).Error)
	return &bid
}
