package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dpamis/procurement-api/internal/application/dto"
	"github.com/dpamis/procurement-api/internal/application/usecase"
	"github.com/dpamis/procurement-api/internal/domain"
)

// PublicRequestHandler handles the public procurement request board.
type PublicRequestHandler struct {
	uc *usecase.PublicRequestUseCase
}

// NewPublicRequestHandler builds the public request handler.
func NewPublicRequestHandler(uc *usecase.PublicRequestUseCase) *PublicRequestHandler {
	return &PublicRequestHandler{uc: uc}
}

// List returns all OPEN requests, newest first. Public endpoint.
func (h *PublicRequestHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListOpen()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "failed to fetch public requests"})
	}
	return c.JSON(list)
}

// Create publishes a new request. HQ only.
func (h *PublicRequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePublicRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product, a positive total_quantity_kg and deadline are required"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "server error"})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
