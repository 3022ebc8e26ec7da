package dto

import "time"

// RegisterSupplierRequest input for supplier registration. Document fields
// carry the storage paths produced by the upload layer; this service treats
// them as opaque strings.
type RegisterSupplierRequest struct {
	SupplierType        string `json:"supplier_type" validate:"required,oneof=individual cooperative"`
	FullName            string `json:"full_name" validate:"omitempty,max=200"`
	CooperativeName     string `json:"cooperative_name" validate:"omitempty,max=200"`
	Email               string `json:"email" validate:"required,email"`
	Phone               string `json:"phone" validate:"omitempty,max=30"`
	Password            string `json:"password" validate:"required,min=8"`
	Province            string `json:"province"`
	District            string `json:"district"`
	Sector              string `json:"sector"`
	NationalIDPath      string `json:"national_id"`
	BusinessLicensePath string `json:"business_license"`
}

// RegisterAdminRequest input for administrator registration (district, region, hq).
type RegisterAdminRequest struct {
	FullName string `json:"full_name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=district region hq"`
	Province string `json:"province"`
	District string `json:"district"`
}

// RegisterResponse output after registration.
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	Status  string `json:"status"`
}

// LoginRequest input for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse output with the JWT and the public profile view.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ConfirmOTPRequest input for code-based activation.
type ConfirmOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

// UserResponse public view of an account. Never carries the password hash or
// the activation code.
type UserResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	Status          string    `json:"status"`
	SupplierType    string    `json:"supplier_type,omitempty"`
	FullName        string    `json:"full_name,omitempty"`
	CooperativeName string    `json:"cooperative_name,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Province        string    `json:"province,omitempty"`
	District        string    `json:"district,omitempty"`
	Sector          string    `json:"sector,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
