package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dpamis/procurement-api/internal/application/auth"
	"github.com/dpamis/procurement-api/internal/application/usecase"
	"github.com/dpamis/procurement-api/internal/domain/entity"
	"github.com/dpamis/procurement-api/internal/domain/repository"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	ApprovalUC      *usecase.ApprovalUseCase
	PublicRequestUC *usecase.PublicRequestUseCase
	UserRepo        repository.UserRepository
	JWTSecret       string
	LoginURL        string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	// Auth (public)
	authHandler := NewAuthHandler(deps.AuthUC, deps.LoginURL)
	authGroup := app.Group("/auth")
	authGroup.Post("/register-supplier", authHandler.RegisterSupplier)
	authGroup.Post("/register-admin", authHandler.RegisterAdmin)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/confirm-otp", authHandler.ConfirmOTP)
	authGroup.Get("/activate", authHandler.Activate)

	// Admin approval queue (HQ only). The role claim is checked first, then
	// the identity is resolved against the store: the account must still be
	// an approved hq account.
	adminHandler := NewAdminHandler(deps.ApprovalUC)
	admin := app.Group("/admin",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleHQ),
		RequireAccount(deps.UserRepo, entity.RoleHQ))
	admin.Get("/pending-approvals", adminHandler.PendingApprovals)
	admin.Post("/approve-user/:id", adminHandler.ApproveUser)
	admin.Post("/reject-user/:id", adminHandler.RejectUser)

	// Public procurement requests: listing is public, posting is HQ only
	requestHandler := NewPublicRequestHandler(deps.PublicRequestUC)
	app.Get("/public-requests", requestHandler.List)
	app.Post("/public-requests",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleHQ),
		RequireAccount(deps.UserRepo, entity.RoleHQ),
		requestHandler.Create)
}
