package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RolePassenger = "passenger"
	RoleDriver    = "driver"
	RoleAdmin     = "admin"
)

// User account statuses
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusDeleted   = "deleted"
)

// User represents an account in the system (passenger, driver or admin)
type User struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	PhoneNumber       string     `json:"phone_number" db:"phone_number"`
	Email             string     `json:"email,omitempty" db:"email"`
	FirstName         string     `json:"first_name,omitempty" db:"first_name"`
	LastName          string     `json:"last_name,omitempty" db:"last_name"`
	Role              string     `json:"role" db:"role"`
	Status            string     `json:"status" db:"status"`
	IsVerified        bool       `json:"is_verified" db:"is_verified"`
	ProfilePictureURL string     `json:"profile_picture_url,omitempty" db:"profile_picture_url"`
	LastLoginAt       *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

// Contact returns the identifier carried in session tokens: the email
// when the profile has one, otherwise the phone number.
func (u *User) Contact() string {
	if u.Email != "" {
		return u.Email
	}
	return u.PhoneNumber
}

// Driver verification statuses
const (
	DriverVerificationPending  = "pending"
	DriverVerificationApproved = "approved"
	DriverVerificationRejected = "rejected"
)

// Driver represents the driver profile attached to a user account
type Driver struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	UserID             uuid.UUID `json:"user_id" db:"user_id"`
	LicenseNumber      string    `json:"license_number" db:"license_number"`
	LicenseExpiryDate  time.Time `json:"license_expiry_date" db:"license_expiry_date"`
	CIN                string    `json:"cin" db:"cin"`
	VehicleMake        string    `json:"vehicle_make" db:"vehicle_make"`
	VehicleModel       string    `json:"vehicle_model" db:"vehicle_model"`
	VehicleYear        int       `json:"vehicle_year" db:"vehicle_year"`
	VehiclePlateNumber string    `json:"vehicle_plate_number" db:"vehicle_plate_number"`
	City               string    `json:"city" db:"city"`
	VerificationStatus string    `json:"verification_status" db:"verification_status"`
	Rating             float64   `json:"rating" db:"rating"`
	TotalRides         int       `json:"total_rides" db:"total_rides"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// Passenger represents the passenger profile attached to a user account
type Passenger struct {
	ID                uuid.UUID `json:"id" db:"id"`
	UserID            uuid.UUID `json:"user_id" db:"user_id"`
	PreferredLanguage string    `json:"preferred_language" db:"preferred_language"`
	Rating            float64   `json:"rating" db:"rating"`
	TotalRides        int       `json:"total_rides" db:"total_rides"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}
