package domain

import "time"

// Registration statuses. A cancelled registration frees its seat and no
// longer blocks re-registration.
const (
	RegistrationPending   = "pending"
	RegistrationConfirmed = "confirmed"
	RegistrationCancelled = "cancelled"
)

// Registration is one attendee's registration for an event. Email is stored
// lowercased so the (email, event) duplicate check can use the email GSI.
type Registration struct {
	RegistrationID string    `json:"id" dynamodbav:"registration_id"`
	EventID        string    `json:"event_id" dynamodbav:"event_id"`
	Name           string    `json:"name" dynamodbav:"name"`
	Email          string    `json:"email" dynamodbav:"email"`
	Phone          string    `json:"phone,omitempty" dynamodbav:"phone"`
	AgeGroup       string    `json:"age_group,omitempty" dynamodbav:"age_group"`
	City           string    `json:"city,omitempty" dynamodbav:"city"`
	Country        string    `json:"country,omitempty" dynamodbav:"country"`
	Status         string    `json:"status" dynamodbav:"status"`
	CreatedAt      time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// Active reports whether the registration still occupies a seat.
func (r *Registration) Active() bool {
	return r.Status != RegistrationCancelled
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	AgeGroup string `json:"age_group"`
	City     string `json:"city"`
	Country  string `json:"country"`
	OTPCode  string `json:"otp_code" validate:"required"`
}

type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}
