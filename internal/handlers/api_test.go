package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/electrobid/electrobid-api/internal/config"
	"github.com/electrobid/electrobid-api/internal/database"
	"github.com/electrobid/electrobid-api/internal/dto"
	"github.com/electrobid/electrobid-api/internal/handlers"
	"github.com/electrobid/electrobid-api/internal/models"
	"github.com/electrobid/electrobid-api/internal/routes"
	"github.com/electrobid/electrobid-api/internal/services"
	"github.com/electrobid/electrobid-api/internal/storage"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Auction{}, &models.Bid{}, &models.Payment{},
	))
	database.DB = db

	cfg := &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		UploadsDir: t.TempDir(),
	}

	images, err := storage.NewImageStore(cfg.UploadsDir)
	require.NoError(t, err)

	lifecycle := services.NewLifecycleService(db)
	authHandler := handlers.NewAuthHandler(services.NewAuthService(db, cfg))
	auctionHandler := handlers.NewAuctionHandler(services.NewAuctionService(db, images, lifecycle))
	bidHandler := handlers.NewBidHandler(services.NewBidService(db, lifecycle))
	paymentHandler := handlers.NewPaymentHandler(services.NewPaymentService(db))
	healthHandler := handlers.NewHealthHandler()

	app := fiber.New()
	routes.Setup(app, cfg, authHandler, auctionHandler, bidHandler, paymentHandler, healthHandler)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func registerAndLogin(t *testing.T, app *fiber.App, name, email, role string) (string, dto.UserResponse) {
	t.Helper()

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		FullName: name, Email: email, Password: "secret-pass", Role: role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: email, Password: "secret-pass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(raw, &login))
	return login.Token, login.User
}

func createAuctionViaAPI(t *testing.T, app *fiber.App, token string, startingPrice float64) dto.AuctionResponse {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("title", "Impact Wrench"))
	require.NoError(t, w.WriteField("description", "Heavy duty impact wrench"))
	require.NoError(t, w.WriteField("starting_price", fmt.Sprintf("%.2f", startingPrice)))
	require.NoError(t, w.WriteField("ends_at", time.Now().UTC().Add(24*time.Hour).Format(time.RFC3339)))
	require.NoError(t, w.WriteField("category", "Tools"))
	require.NoError(t, w.WriteField("condition", "New"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/auctions/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var auction dto.AuctionResponse
	require.NoError(t, json.Unmarshal(raw, &auction))
	return auction
}

func TestHealthEndpoint(t *testing.T) {
	app := setupApp(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health dto.HealthResponse
	require.NoError(t, json.Unmarshal(raw, &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "ok", health.DB)
}

func TestRegisterValidationAndDuplicates(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		FullName: "Ada", Email: "ada@example.com", Password: "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		FullName: "Ada", Email: "ada@example.com", Password: "secret-pass",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		FullName: "Ada Again", Email: "ADA@example.com", Password: "secret-pass",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLoginFailure(t *testing.T) {
	app := setupApp(t)
	registerAndLogin(t, app, "Ada", "ada@example.com", "buyer")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "ada@example.com", Password: "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuctionRoleGates(t *testing.T) {
	app := setupApp(t)
	buyerToken, _ := registerAndLogin(t, app, "Bob", "bob@example.com", "buyer")
	sellerToken, _ := registerAndLogin(t, app, "Ada", "ada@example.com", "seller")

	// A buyer cannot create auctions.
	resp, _ := doJSON(t, app, http.MethodPost, "/api/auctions/", buyerToken, fiber.Map{})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// No token at all.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/auctions/", "", fiber.Map{})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	auction := createAuctionViaAPI(t, app, sellerToken, 100)
	assert.Equal(t, 100.0, auction.CurrentPrice)

	// Browsing is public.
	resp, raw := doJSON(t, app, http.MethodGet, "/api/auctions/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.AuctionResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Len(t, list, 1)
}

func TestBiddingFlowOverHTTP(t *testing.T) {
	app := setupApp(t)
	sellerToken, _ := registerAndLogin(t, app, "Ada", "ada@example.com", "seller")
	buyerToken, buyer := registerAndLogin(t, app, "Bob", "bob@example.com", "buyer")

	auction := createAuctionViaAPI(t, app, sellerToken, 100)

	// Sellers cannot place bids at all (role gate).
	resp, _ := doJSON(t, app, http.MethodPost, "/api/bids/", sellerToken, dto.CreateBidRequest{
		AuctionID: auction.ID, Amount: 150,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Too low.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/bids/", buyerToken, dto.CreateBidRequest{
		AuctionID: auction.ID, Amount: 100,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Accepted.
	resp, raw := doJSON(t, app, http.MethodPost, "/api/bids/", buyerToken, dto.CreateBidRequest{
		AuctionID: auction.ID, Amount: 150,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var bid dto.BidResponse
	require.NoError(t, json.Unmarshal(raw, &bid))
	assert.Equal(t, buyer.ID, bid.BidderID)
	assert.Equal(t, "Bob", bid.BidderName)

	// Bid history is public and the price moved.
	resp, raw = doJSON(t, app, http.MethodGet, "/api/bids/auction/"+auction.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var bids []dto.BidResponse
	require.NoError(t, json.Unmarshal(raw, &bids))
	require.Len(t, bids, 1)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/auctions/"+auction.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var reloaded dto.AuctionResponse
	require.NoError(t, json.Unmarshal(raw, &reloaded))
	assert.Equal(t, 150.0, reloaded.CurrentPrice)
}

func TestPaymentFlowOverHTTP(t *testing.T) {
	app := setupApp(t)
	sellerToken, _ := registerAndLogin(t, app, "Ada", "ada@example.com", "seller")
	buyerToken, _ := registerAndLogin(t, app, "Bob", "bob@example.com", "buyer")
	adminToken, _ := registerAndLogin(t, app, "Root", "root@example.com", "admin")

	auction := createAuctionViaAPI(t, app, sellerToken, 100)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/payments/", buyerToken, dto.CreatePaymentRequest{
		AuctionID: auction.ID, Amount: 150,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var payment dto.PaymentResponse
	require.NoError(t, json.Unmarshal(raw, &payment))
	assert.Equal(t, models.PaymentPending, payment.Status)

	// Pay now, then try again.
	resp, raw = doJSON(t, app, http.MethodPost, "/api/payments/pay/"+payment.ID.String(), buyerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var paid dto.PaymentResponse
	require.NoError(t, json.Unmarshal(raw, &paid))
	assert.Equal(t, models.PaymentCompleted, paid.Status)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/payments/pay/"+payment.ID.String(), buyerToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Listing all payments is admin-only.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/payments/", buyerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/payments/", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []dto.PaymentResponse
	require.NoError(t, json.Unmarshal(raw, &all))
	assert.Len(t, all, 1)
}

func TestUserDirectoryIsAdminOnly(t *testing.T) {
	app := setupApp(t)
	buyerToken, _ := registerAndLogin(t, app, "Bob", "bob@example.com", "buyer")
	adminToken, _ := registerAndLogin(t, app, "Root", "root@example.com", "admin")

	resp, _ := doJSON(t, app, http.MethodGet, "/api/users/", buyerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/users/", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []dto.UserResponse
	require.NoError(t, json.Unmarshal(raw, &users))
	assert.Len(t, users, 2)
}
