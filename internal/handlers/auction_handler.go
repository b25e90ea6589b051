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

type AuctionHandler struct {
	auctionService *services.AuctionService
}

func NewAuctionHandler(auctionService *services.AuctionService) *AuctionHandler {
	return &AuctionHandler{auctionService: auctionService}
}

// Create accepts a multipart form with the listing fields and an optional
// "image" file.
func (h *AuctionHandler) Create(c *fiber.Ctx) error {
	sellerID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateAuctionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	// Missing file is fine; the listing just has no image.
	image, _ := c.FormFile("image")

	resp, err := h.auctionService.Create(sellerID, &req, image)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	slog.Info("auction created", "auction_id", resp.ID, "seller_id", sellerID)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuctionHandler) List(c *fiber.Ctx) error {
	auctions, err := h.auctionService.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(auctions)
}

func (h *AuctionHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid auction id",
		})
	}

	auction, err := h.auctionService.GetByID(id)
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

	return c.JSON(auction)
}

func (h *AuctionHandler) ListMine(c *fiber.Ctx) error {
	sellerID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	auctions, err := h.auctionService.ListBySeller(sellerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(auctions)
}

func (h *AuctionHandler) Delete(c *fiber.Ctx) error {
	requesterID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid auction id",
		})
	}

	if err := h.auctionService.Delete(id, requesterID, middleware.GetRole(c)); err != nil {
		if errors.Is(err, services.ErrAuctionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Auction not found or you don't have permission to delete it",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	slog.Info("auction deleted", "auction_id", id, "requester_id", requesterID)
	return c.SendStatus(fiber.StatusNoContent)
}
