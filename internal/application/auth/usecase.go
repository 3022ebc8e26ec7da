package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dpamis/procurement-api/internal/application/dto"
	"github.com/dpamis/procurement-api/internal/domain"
	"github.com/dpamis/procurement-api/internal/domain/entity"
	"github.com/dpamis/procurement-api/internal/domain/repository"
	"github.com/dpamis/procurement-api/pkg/jwt"
	"github.com/dpamis/procurement-api/pkg/otp"
)

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret   string
	ExpHours int
	Issuer   string
}

// AuthUseCase covers registration, login and OTP/magic-link activation.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	now      func() time.Time
}

// NewAuthUseCase builds the auth use case.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, now: time.Now}
}

// hashPassword is the single place plaintext becomes a credential hash.
func hashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func checkPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// normalizeEmail lowercases and trims; emails are unique case-insensitively.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterSupplier creates a supplier account in pending status. Individual
// suppliers must carry a full name, cooperatives a cooperative name; the
// variant is matched exhaustively rather than by ad hoc field sniffing.
func (uc *AuthUseCase) RegisterSupplier(in dto.RegisterSupplierRequest) (*dto.RegisterResponse, error) {
	switch in.SupplierType {
	case entity.SupplierIndividual:
		if in.FullName == "" {
			return nil, domain.ErrInvalidInput
		}
		in.CooperativeName = ""
	case entity.SupplierCooperative:
		if in.CooperativeName == "" {
			return nil, domain.ErrInvalidInput
		}
		in.FullName = ""
	default:
		return nil, domain.ErrInvalidInput
	}

	user := &entity.User{
		Role:                entity.RoleSupplier,
		Status:              entity.StatusPending,
		SupplierType:        in.SupplierType,
		FullName:            in.FullName,
		CooperativeName:     in.CooperativeName,
		Phone:               in.Phone,
		Province:            in.Province,
		District:            in.District,
		Sector:              in.Sector,
		NationalIDPath:      in.NationalIDPath,
		BusinessLicensePath: in.BusinessLicensePath,
	}
	return uc.register(user, in.Email, in.Password)
}

// RegisterAdmin creates an administrator account. Only district, region and
// hq may self-register; hq starts approved, the rest pending.
func (uc *AuthUseCase) RegisterAdmin(in dto.RegisterAdminRequest) (*dto.RegisterResponse, error) {
	if !entity.AdminRole(in.Role) || in.FullName == "" {
		return nil, domain.ErrInvalidInput
	}
	status := entity.StatusPending
	if in.Role == entity.RoleHQ {
		status = entity.StatusApproved
	}
	user := &entity.User{
		Role:     in.Role,
		Status:   status,
		FullName: in.FullName,
		Phone:    in.Phone,
		Province: in.Province,
		District: in.District,
	}
	return uc.register(user, in.Email, in.Password)
}

func (uc *AuthUseCase) register(user *entity.User, email, password string) (*dto.RegisterResponse, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user.ID = uuid.New().String()
	user.Email = email
	user.PasswordHash = hash
	user.CreatedAt = now
	user.UpdatedAt = now
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	msg := "Registration received. Your account is pending verification by HQ."
	if user.Status == entity.StatusApproved {
		msg = "Registration received. Your account is active."
	}
	return &dto.RegisterResponse{Message: msg, UserID: user.ID, Status: user.Status}, nil
}

// Login verifies the credentials, checks the lifecycle gate and mints a JWT.
// An unknown email and a wrong password return the same ErrInvalidCredential
// so callers cannot probe which addresses are registered.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || !checkPassword(user.PasswordHash, in.Password) {
		return nil, domain.ErrInvalidCredential
	}
	if user.Status != entity.StatusApproved {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpHours)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// RedeemOTP validates and consumes an activation code. Used by both the
// code-submission endpoint and the magic-link endpoint.
//
// Errors: ErrUserNotFound (no such email), ErrInvalidState (no open code or
// the code expired), ErrInvalidCredential (wrong code; the code is kept so
// the real one can still be used).
func (uc *AuthUseCase) RedeemOTP(email, code string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByEmail(normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	now := uc.now()
	if !user.HasOpenOTP() || !now.Before(user.OTPExpiresAt) {
		return nil, domain.ErrInvalidState
	}
	if !otp.Equal(code, user.OTP) {
		return nil, domain.ErrInvalidCredential
	}
	user.ClearOTP()
	user.Status = entity.StatusApproved // already approved; redemption is idempotent here
	user.UpdatedAt = now
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
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
