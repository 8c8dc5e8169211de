package models

import (
	"time"
)

// OTP represents a pending one-time password for a phone number.
// The code itself is stored hashed; the plain code only exists in the
// SMS sent to the user.
type OTP struct {
	PhoneNumber string    `json:"phone_number"`
	CodeHash    string    `json:"code_hash"`
	CreatedAt   time.Time `json:"created_at"`
	Attempts    int       `json:"attempts"`
}

// RequestOTPRequest is the body of POST /auth/otp/request
type RequestOTPRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// VerifyOTPRequest is the body of POST /auth/otp/verify
type VerifyOTPRequest struct {
	PhoneNumber string `json:"phone_number"`
	OTP         string `json:"otp"`
}

// RefreshTokenRequest is the body of POST /auth/token/refresh
type RefreshTokenRequest struct {
	Token string `json:"token"`
}

// CompleteProfileRequest is the body of POST /auth/profile/complete
type CompleteProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
}

// UpdateProfileRequest is the body of PUT /auth/profile
type UpdateProfileRequest struct {
	FirstName         string `json:"first_name,omitempty"`
	LastName          string `json:"last_name,omitempty"`
	Email             string `json:"email,omitempty"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
}

// RegisterDriverRequest is the body of POST /auth/driver/register
type RegisterDriverRequest struct {
	LicenseNumber      string    `json:"license_number"`
	LicenseExpiryDate  time.Time `json:"license_expiry_date"`
	CIN                string    `json:"cin"`
	VehicleMake        string    `json:"vehicle_make"`
	VehicleModel       string    `json:"vehicle_model"`
	VehicleYear        int       `json:"vehicle_year"`
	VehiclePlateNumber string    `json:"vehicle_plate_number"`
	City               string    `json:"city"`
}

// AuthResponse is returned after a successful OTP verification
type AuthResponse struct {
	Token     string `json:"token"`
	User      *User  `json:"user"`
	IsNewUser bool   `json:"is_new_user"`
	ExpiresAt int64  `json:"expires_at"`
}

// TokenResponse is returned by the refresh endpoint
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// ProfileResponse bundles a user with their role-specific profile
type ProfileResponse struct {
	User    *User       `json:"user"`
	Profile interface{} `json:"profile,omitempty"`
}

// SMSMessage is the payload published to the SMS dispatch topic
type SMSMessage struct {
	PhoneNumber string    `json:"phone_number"`
	Body        string    `json:"body"`
	RequestedAt time.Time `json:"requested_at"`
}
