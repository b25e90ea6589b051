package handlers

import (
	"errors"
	"log/slog"

	"github.com/electrobid/electrobid-api/internal/dto"
	"github.com/electrobid/electrobid-api/internal/middleware"
	"github.com/electrobid/electrobid-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BidHandler struct {
	bidService *services.BidService
}

func NewBidHandler(bidService *services.BidService) *BidHandler {
	return &BidHandler{bidService: bidService}
}

func (h *BidHandler) Create(c *fiber.Ctx) error {
	bidderID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateBidRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, err := h.bidService.Place(bidderID, &req)
	if err != nil {
		if errors.Is(err, services.ErrAuctionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrAuctionEnded) ||
			errors.Is(err, services.ErrBidTooLow) ||
			errors.Is(err, services.ErrSellerOwnBid) ||
			errors.Is(err, services.ErrInvalidAmount) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	slog.Info("bid placed", "bid_id", resp.ID, "auction_id", req.AuctionID, "bidder_id", bidderID, "amount", req.Amount)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *BidHandler) ListByAuction(c *fiber.Ctx) error {
	auctionID, err := uuid.Parse(c.Params("auctionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid auction id",
		})
	}

	bids, err := h.bidService.ListByAuction(auctionID)
	if err != nil {
		if errors.Is(err, services.ErrAuctionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(bids)
}

func (h *BidHandler) ListMine(c *fiber.Ctx) error {
	bidderID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	bids, err := h.bidService.ListByBidder(bidderID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(bids)
}
