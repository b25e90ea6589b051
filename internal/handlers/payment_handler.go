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

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	buyerID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, err := h.paymentService.Create(buyerID, &req)
	if err != nil {
		if errors.Is(err, services.ErrAuctionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrPaymentExists) || errors.Is(err, services.ErrInvalidAmount) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	slog.Info("payment created", "payment_id", resp.ID, "auction_id", req.AuctionID, "buyer_id", buyerID)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *PaymentHandler) ListAll(c *fiber.Ctx) error {
	payments, err := h.paymentService.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(payments)
}

func (h *PaymentHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid payment id",
		})
	}

	payment, err := h.paymentService.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(payment)
}

func (h *PaymentHandler) ListMine(c *fiber.Ctx) error {
	buyerID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	payments, err := h.paymentService.ListByBuyer(buyerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(payments)
}

// Pay completes a pending payment. Repeating the call is an error, not a
// no-op.
func (h *PaymentHandler) Pay(c *fiber.Ctx) error {
	buyerID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid payment id",
		})
	}

	resp, err := h.paymentService.MarkPaid(id, buyerID)
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Payment not found or not authorized",
			})
		}
		if errors.Is(err, services.ErrPaymentAlreadyCompleted) || errors.Is(err, services.ErrPaymentNotPending) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	slog.Info("payment completed", "payment_id", id, "buyer_id", buyerID)
	return c.JSON(resp)
}
