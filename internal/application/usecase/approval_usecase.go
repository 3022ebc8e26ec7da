package usecase

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dpamis/procurement-api/internal/application/dto"
	"github.com/dpamis/procurement-api/internal/application/notify"
	"github.com/dpamis/procurement-api/internal/domain"
	"github.com/dpamis/procurement-api/internal/domain/entity"
	"github.com/dpamis/procurement-api/internal/domain/repository"
	"github.com/dpamis/procurement-api/pkg/otp"
)

// notifier is the minimal contract the use case needs from the mail
// dispatcher. The interface keeps tests synchronous.
type notifier interface {
	Enqueue(msg notify.Message)
}

// ActivationConfig settings for the OTP window and the magic link.
type ActivationConfig struct {
	BaseURL string        // public base URL the magic link is built on
	OTPTTL  time.Duration // activation code validity window
}

// ApprovalUseCase owns the HQ side of the account lifecycle: the pending
// queue, approval (which opens the OTP activation window) and rejection.
type ApprovalUseCase struct {
	userRepo   repository.UserRepository
	dispatcher notifier
	activation ActivationConfig
	now        func() time.Time
}

// NewApprovalUseCase builds the approval use case.
func NewApprovalUseCase(userRepo repository.UserRepository, dispatcher notifier, activation ActivationConfig) *ApprovalUseCase {
	if activation.OTPTTL <= 0 {
		activation.OTPTTL = 10 * time.Minute
	}
	return &ApprovalUseCase{
		userRepo:   userRepo,
		dispatcher: dispatcher,
		activation: activation,
		now:        time.Now,
	}
}

// ListPending returns accounts awaiting an HQ decision, oldest first.
func (uc *ApprovalUseCase) ListPending(page dto.PageRequest) ([]dto.UserResponse, error) {
	page.DefaultPage()
	users, err := uc.userRepo.ListByStatus(entity.StatusPending, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// Approve moves a pending account to approved, opens a 10-minute OTP window
// and queues the activation mail. The state write is conditioned on the
// version the account was read at, so a concurrent approve loses with
// ErrConflict instead of minting a second code.
func (uc *ApprovalUseCase) Approve(id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if user.Status != entity.StatusPending {
		return nil, domain.ErrInvalidState
	}

	code, err := otp.Generate()
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user.Status = entity.StatusApproved
	user.OTP = code
	user.OTPExpiresAt = now.Add(uc.activation.OTPTTL)
	user.UpdatedAt = now
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}

	// Mail is queued only after the state write commits; delivery failure
	// never rolls the approval back.
	uc.dispatcher.Enqueue(notify.Message{
		Kind: notify.KindActivation,
		To:   user.Email,
		Code: code,
		Link: uc.activationLink(user.Email, code),
	})
	return toUserResponse(user), nil
}

// Reject moves a pending account to rejected and queues the rejection mail.
// Rejection answers a pending application: approved or already-rejected
// accounts return ErrInvalidState.
func (uc *ApprovalUseCase) Reject(id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if user.Status != entity.StatusPending {
		return nil, domain.ErrInvalidState
	}

	user.Status = entity.StatusRejected
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}

	uc.dispatcher.Enqueue(notify.Message{Kind: notify.KindRejection, To: user.Email})
	return toUserResponse(user), nil
}

func (uc *ApprovalUseCase) activationLink(email, code string) string {
	return fmt.Sprintf("%s/auth/activate?email=%s&otp=%s",
		uc.activation.BaseURL, url.QueryEscape(email), url.QueryEscape(code))
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Role:            u.Role,
		Status:          u.Status,
		SupplierType:    u.SupplierType,
		FullName:        u.FullName,
		CooperativeName: u.CooperativeName,
		Phone:           u.Phone,
		Province:        u.Province,
		District:        u.District,
		Sector:          u.Sector,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
