package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dpamis/procurement-api/internal/application/auth"
	"github.com/dpamis/procurement-api/internal/application/dto"
	"github.com/dpamis/procurement-api/internal/domain"
)

// AuthHandler handles registration, login and account activation.
type AuthHandler struct {
	uc       *auth.AuthUseCase
	loginURL string // where the magic link redirects after activation
}

// NewAuthHandler builds the auth handler.
func NewAuthHandler(uc *auth.AuthUseCase, loginURL string) *AuthHandler {
	return &AuthHandler{uc: uc, loginURL: loginURL}
}

// RegisterSupplier creates a supplier account (individual or cooperative) in
// pending status.
func (h *AuthHandler) RegisterSupplier(c *fiber.Ctx) error {
	var in dto.RegisterSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if in.SupplierType == "" || in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "supplier_type, email and password are required"})
	}
	out, err := h.uc.RegisterSupplier(in)
	if err != nil {
		return registerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RegisterAdmin creates an administrator account (district, region or hq).
func (h *AuthHandler) RegisterAdmin(c *fiber.Ctx) error {
	var in dto.RegisterAdminRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if in.Role == "" || in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "role, email and password are required"})
	}
	out, err := h.uc.RegisterAdmin(in)
	if err != nil {
		return registerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func registerError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "missing or invalid fields for the requested role"})
	case domain.ErrEmailAlreadyExists:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "email already registered"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "server error"})
}

// Login verifies credentials and returns a JWT plus the public profile.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email and password are required"})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		switch err {
		case domain.ErrInvalidCredential:
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid credentials"})
		case domain.ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "account not approved yet"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "server error"})
	}
	return c.JSON(out)
}

// ConfirmOTP redeems an activation code submitted from the activation form.
func (h *AuthHandler) ConfirmOTP(c *fiber.Ctx) error {
	var in dto.ConfirmOTPRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if in.Email == "" || in.OTP == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email and otp are required"})
	}
	out, err := h.uc.RedeemOTP(in.Email, in.OTP)
	if err != nil {
		switch err {
		case domain.ErrUserNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no account for that email"})
		case domain.ErrInvalidState:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "OTP_EXPIRED", Message: "no active code or the code expired; ask HQ to approve again"})
		case domain.ErrInvalidCredential:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_OTP", Message: "incorrect activation code"})
		case domain.ErrConflict:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "account changed concurrently, try again"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "server error"})
	}
	return c.JSON(fiber.Map{"message": "Account activated. You can now log in.", "user": out})
}

// Activate redeems the magic link (GET /auth/activate?email=...&otp=...) and
// redirects the browser to the login page on success. Failures answer in
// plain text because the caller is a browser, not the SPA.
func (h *AuthHandler) Activate(c *fiber.Ctx) error {
	email := c.Query("email")
	code := c.Query("otp")
	if email == "" || code == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid activation link.")
	}
	if _, err := h.uc.RedeemOTP(email, code); err != nil {
		switch err {
		case domain.ErrUserNotFound:
			return c.Status(fiber.StatusNotFound).SendString("No account for that email.")
		case domain.ErrInvalidState, domain.ErrInvalidCredential:
			return c.Status(fiber.StatusBadRequest).SendString("Invalid or expired activation link.")
		}
		return c.Status(fiber.StatusInternalServerError).SendString("Server error.")
	}
	return c.Redirect(h.loginURL, fiber.StatusFound)
}
