package entity

import "time"

// Valid roles for User.
const (
	RoleSupplier = "supplier"
	RoleStation  = "station"
	RoleDistrict = "district"
	RoleRegion   = "region"
	RoleHQ       = "hq"
)

// Lifecycle statuses for User.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Supplier types.
const (
	SupplierIndividual  = "individual"
	SupplierCooperative = "cooperative"
)

// AdminRole reports whether role is one of the administrator roles that may
// be self-registered (district, region, hq).
func AdminRole(role string) bool {
	switch role {
	case RoleDistrict, RoleRegion, RoleHQ:
		return true
	}
	return false
}

// User represents a registrant: a supplier (individual or cooperative) or an
// administrator in the district/region/hq hierarchy.
type User struct {
	ID                  string
	Email               string // unique, stored lowercase
	PasswordHash        string // bcrypt hash, never plain after registration
	Role                string // supplier, station, district, region, hq
	Status              string // pending, approved, rejected
	SupplierType        string // individual, cooperative (suppliers only)
	FullName            string // required for individual suppliers and admins
	CooperativeName     string // required for cooperative suppliers
	Phone               string
	Province            string
	District            string
	Sector              string
	NationalIDPath      string    // path to the uploaded national id document
	BusinessLicensePath string    // path to the uploaded business license
	OTP                 string    // set only while an activation window is open
	OTPExpiresAt        time.Time // zero when OTP is empty
	Version             int       // optimistic lock counter, bumped on every update
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HasOpenOTP reports whether the account has an unredeemed activation code.
// Expiry is checked separately against the caller's clock.
func (u *User) HasOpenOTP() bool {
	return u.OTP != "" && !u.OTPExpiresAt.IsZero()
}

// ClearOTP removes the activation code after redemption.
func (u *User) ClearOTP() {
	u.OTP = ""
	u.OTPExpiresAt = time.Time{}
}
