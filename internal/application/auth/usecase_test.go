package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpamis/procurement-api/internal/application/dto"
	"github.com/dpamis/procurement-api/internal/domain"
	"github.com/dpamis/procurement-api/internal/domain/entity"
	pkgjwt "github.com/dpamis/procurement-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "dpamis-test"
)

// memUserRepo is an in-memory UserRepository with the same contract as the
// Postgres adapter: (nil, nil) on miss, version CAS on Update.
type memUserRepo struct {
	users map[string]*entity.User // by id
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (m *memUserRepo) Create(u *entity.User) error {
	for _, ex := range m.users {
		if ex.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) Update(u *entity.User) error {
	cur, ok := m.users[u.ID]
	if !ok || cur.Version != u.Version {
		return domain.ErrConflict
	}
	cp := *u
	cp.Version++
	m.users[u.ID] = &cp
	u.Version++
	return nil
}

func (m *memUserRepo) ListByStatus(status string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.users {
		if u.Status == status {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func newTestUseCase(repo *memUserRepo) *AuthUseCase {
	return NewAuthUseCase(repo, JWTConfig{Secret: testSecret, ExpHours: 168, Issuer: testIssuer})
}

func supplierInput() dto.RegisterSupplierRequest {
	return dto.RegisterSupplierRequest{
		SupplierType: entity.SupplierIndividual,
		FullName:     "Jean Bosco",
		Email:        "a@x.com",
		Password:     "secret-pass",
		Province:     "North",
		District:     "Musanze",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Registration
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterSupplier_StartsPending(t *testing.T) {
	repo := newMemUserRepo()
	uc := newTestUseCase(repo)

	out, err := uc.RegisterSupplier(supplierInput())
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, out.Status)
	assert.NotEmpty(t, out.UserID)

	stored, _ := repo.GetByID(out.UserID)
	require.NotNil(t, stored)
	assert.Equal(t, entity.RoleSupplier, stored.Role)
	assert.Equal(t, entity.StatusPending, stored.Status)
	assert.NotEqual(t, "secret-pass", stored.PasswordHash, "password must be hashed")
	assert.Empty(t, stored.OTP, "no OTP before approval")
}

func TestRegisterSupplier_IndividualRequiresFullName(t *testing.T) {
	uc := newTestUseCase(newMemUserRepo())
	in := supplierInput()
	in.FullName = ""
	_, err := uc.RegisterSupplier(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterSupplier_CooperativeRequiresCooperativeName(t *testing.T) {
	uc := newTestUseCase(newMemUserRepo())
	in := supplierInput()
	in.SupplierType = entity.SupplierCooperative
	in.CooperativeName = ""
	_, err := uc.RegisterSupplier(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterSupplier_UnknownTypeRejected(t *testing.T) {
	uc := newTestUseCase(newMemUserRepo())
	in := supplierInput()
	in.SupplierType = "corporation"
	_, err := uc.RegisterSupplier(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterSupplier_DuplicateEmailConflicts(t *testing.T) {
	repo := newMemUserRepo()
	uc := newTestUseCase(repo)

	_, err := uc.RegisterSupplier(supplierInput())
	require.NoError(t, err)

	// Same email, different case: still a conflict.
	in := supplierInput()
	in.Email = "A@X.com"
	_, err = uc.RegisterSupplier(in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	// Duplicate across roles conflicts too.
	_, err = uc.RegisterAdmin(dto.RegisterAdminRequest{
		FullName: "HQ Admin", Email: "a@x.com", Password: "secret-pass", Role: entity.RoleHQ,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterAdmin_StatusPerRole(t *testing.T) {
	cases := []struct {
		role       string
		wantStatus string
	}{
		{entity.RoleDistrict, entity.StatusPending},
		{entity.RoleRegion, entity.StatusPending},
		{entity.RoleHQ, entity.StatusApproved},
	}
	for _, tc := range cases {
		repo := newMemUserRepo()
		uc := newTestUseCase(repo)
		out, err := uc.RegisterAdmin(dto.RegisterAdminRequest{
			FullName: "Admin", Email: tc.role + "@x.com", Password: "secret-pass", Role: tc.role,
		})
		require.NoError(t, err, tc.role)
		assert.Equal(t, tc.wantStatus, out.Status, "role %s", tc.role)
	}
}

func TestRegisterAdmin_SupplierAndStationRolesRejected(t *testing.T) {
	uc := newTestUseCase(newMemUserRepo())
	for _, role := range []string{entity.RoleSupplier, entity.RoleStation, "superadmin"} {
		_, err := uc.RegisterAdmin(dto.RegisterAdminRequest{
			FullName: "X", Email: "x@x.com", Password: "secret-pass", Role: role,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "role %s must not self-register as admin", role)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_PendingAccountForbidden(t *testing.T) {
	repo := newMemUserRepo()
	uc := newTestUseCase(repo)
	_, err := uc.RegisterSupplier(supplierInput())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "a@x.com", Password: "secret-pass"})
	assert.ErrorIs(t, err, domain.ErrForbidden, "correct password is not enough while pending")
}

func TestLogin_UnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	repo := newMemUserRepo()
	uc := newTestUseCase(repo)
	_, err := uc.RegisterSupplier(supplierInput())
	require.NoError(t, err)

	_, errUnknown := uc.Login(dto.LoginRequest{Email: "nobody@x.com", Password: "secret-pass"})
	_, errWrongPw := uc.Login(dto.LoginRequest{Email: "a@x.com", Password: "wrong"})

	assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredential)
	assert.ErrorIs(t, errWrongPw, domain.ErrInvalidCredential)
	assert.Equal(t, errUnknown, errWrongPw, "both cases must return the identical error")
}

func TestLogin_ApprovedAccountGetsToken(t *testing.T) {
	repo := newMemUserRepo()
	uc := newTestUseCase(repo)
	out, err := uc.RegisterSupplier(supplierInput())
	require.NoError(t, err)

	// Approve directly through the repo (the approval flow has its own tests).
	u, _ := repo.GetByID(out.UserID)
	u.Status = entity.StatusApproved
	require.NoError(t, repo.Update(u))

	resp, err := uc.Login(dto.LoginRequest{Email: "a@x.com", Password: "secret-pass"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, role, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, out.UserID, userID)
	assert.Equal(t, entity.RoleSupplier, role)

	assert.Equal(t, "a@x.com", resp.User.Email)
	assert.Equal(t, entity.StatusApproved, resp.User.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// OTP redemption
// ──────────────────────────────────────────────────────────────────────────────

// approvedUser stores an approved account with an open OTP window.
func approvedUser(t *testing.T, repo *memUserRepo, code string, approvedAt time.Time, ttl time.Duration) *entity.User {
	t.Helper()
	u := &entity.User{
		ID:           "u-1",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		Role:         entity.RoleSupplier,
		Status:       entity.StatusApproved,
		OTP:          code,
		OTPExpiresAt: approvedAt.Add(ttl),
		CreatedAt:    approvedAt,
		UpdatedAt:    approvedAt,
	}
	require.NoError(t, repo.Create(u))
	return u
}

func TestRedeemOTP_CorrectCodeBeforeExpiry(t *testing.T) {
	repo := newMemUserRepo()
	uc := newTestUseCase(repo)
	approvedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	approvedUser(t, repo, "123456", approvedAt, 10*time.Minute)

	uc.now = func() time.Time { return approvedAt.Add(9*time.Minute + 59*time.Second) }
	out, err := uc.RedeemOTP("a@x.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, out.Status)

	stored, _ := repo.GetByEmail("a@x.com")
	assert.Empty(t, stored.OTP, "OTP must be cleared")
	assert.True(t, stored.OTPExpiresAt.IsZero(), "expiry must be cleared with the code")
}

func TestRedeemOTP_ExpiredCode(t *testing.T) {
	repo := newMemUserRepo()
	uc := newTestUseCase(repo)
	approvedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	approvedUser(t, repo, "123456", approvedAt, 10*time.Minute)

	uc.now = func() time.Time { return approvedAt.Add(10*time.Minute + 1*time.Second) }
	_, err := uc.RedeemOTP("a@x.com", "123456")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestRedeemOTP_ExactExpiryInstantIsInvalid(t *testing.T) {
	repo := newMemUserRepo()
	uc := newTestUseCase(repo)
	approvedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	approvedUser(t, repo, "123456", approvedAt, 10*time.Minute)

	// The code is invalid AT the expiry instant, not only after it.
	uc.now = func() time.Time { return approvedAt.Add(10 * time.Minute) }
	_, err := uc.RedeemOTP("a@x.com", "123456")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestRedeemOTP_WrongCodeKeepsOTP(t *testing.T) {
	repo := newMemUserRepo()
	uc := newTestUseCase(repo)
	approvedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	approvedUser(t, repo, "123456", approvedAt, 10*time.Minute)

	uc.now = func() time.Time { return approvedAt.Add(time.Minute) }
	_, err := uc.RedeemOTP("a@x.com", "654321")
	assert.ErrorIs(t, err, domain.ErrInvalidCredential)

	stored, _ := repo.GetByEmail("a@x.com")
	assert.Equal(t, "123456", stored.OTP, "a wrong guess must not burn the real code")

	// The real code still works afterwards.
	_, err = uc.RedeemOTP("a@x.com", "123456")
	assert.NoError(t, err)
}

func TestRedeemOTP_SingleUse(t *testing.T) {
	repo := newMemUserRepo()
	uc := newTestUseCase(repo)
	approvedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	approvedUser(t, repo, "123456", approvedAt, 10*time.Minute)

	uc.now = func() time.Time { return approvedAt.Add(time.Minute) }
	_, err := uc.RedeemOTP("a@x.com", "123456")
	require.NoError(t, err)

	// Second redemption with the now-cleared code: no open window anymore.
	_, err = uc.RedeemOTP("a@x.com", "123456")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestRedeemOTP_UnknownEmail(t *testing.T) {
	uc := newTestUseCase(newMemUserRepo())
	_, err := uc.RedeemOTP("nobody@x.com", "123456")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRedeemOTP_NoOpenWindow(t *testing.T) {
	repo := newMemUserRepo()
	uc := newTestUseCase(repo)
	_, err := uc.RegisterSupplier(supplierInput()) // pending, no OTP
	require.NoError(t, err)

	_, err = uc.RedeemOTP("a@x.com", "123456")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// ──────────────────────────────────────────────────────────────────────────────
// End to end through the use case: register → approve → redeem → login
// ──────────────────────────────────────────────────────────────────────────────

func TestLifecycle_RegisterApproveRedeemLogin(t *testing.T) {
	repo := newMemUserRepo()
	uc := newTestUseCase(repo)

	out, err := uc.RegisterSupplier(supplierInput())
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, out.Status)

	// Simulate the HQ approval write the approval use case performs.
	approvedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	u, _ := repo.GetByID(out.UserID)
	u.Status = entity.StatusApproved
	u.OTP = "123456"
	u.OTPExpiresAt = approvedAt.Add(10 * time.Minute)
	require.NoError(t, repo.Update(u))

	uc.now = func() time.Time { return approvedAt.Add(5 * time.Minute) }
	redeemed, err := uc.RedeemOTP("a@x.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, redeemed.Status)

	resp, err := uc.Login(dto.LoginRequest{Email: "a@x.com", Password: "secret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}
