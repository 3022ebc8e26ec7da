package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dpamis/procurement-api/internal/application/dto"
	"github.com/dpamis/procurement-api/internal/application/usecase"
	"github.com/dpamis/procurement-api/internal/domain"
)

// AdminHandler handles the HQ approval queue.
type AdminHandler struct {
	uc *usecase.ApprovalUseCase
}

// NewAdminHandler builds the admin handler.
func NewAdminHandler(uc *usecase.ApprovalUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// PendingApprovals lists accounts awaiting an HQ decision.
func (h *AdminHandler) PendingApprovals(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "invalid pagination"})
	}
	list, err := h.uc.ListPending(page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "server error"})
	}
	return c.JSON(list)
}

// ApproveUser approves a pending account and triggers the activation mail.
func (h *AdminHandler) ApproveUser(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.Params("id"))
	if err != nil {
		return lifecycleError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User approved. Activation code sent by email.", "user": out})
}

// RejectUser rejects a pending account and triggers the rejection mail.
func (h *AdminHandler) RejectUser(c *fiber.Ctx) error {
	out, err := h.uc.Reject(c.Params("id"))
	if err != nil {
		return lifecycleError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User rejected.", "user": out})
}

func lifecycleError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no such user"})
	case domain.ErrInvalidState:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "user is not pending"})
	case domain.ErrConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "user changed concurrently, reload and retry"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "server error"})
}
