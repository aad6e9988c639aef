package domain

import "time"

// Volunteer opportunity statuses.
const (
	OpportunityOpen   = "open"
	OpportunityClosed = "closed"
)

// Volunteer application statuses.
const (
	VolunteerPending   = "pending"
	VolunteerApproved  = "approved"
	VolunteerRejected  = "rejected"
	VolunteerContacted = "contacted"
)

type VolunteerOpportunity struct {
	OpportunityID       string    `json:"id" dynamodbav:"opportunity_id"`
	Title               string    `json:"title" dynamodbav:"title"`
	Description         string    `json:"description" dynamodbav:"description"`
	Commitment          string    `json:"commitment,omitempty" dynamodbav:"commitment"` // e.g. "2 hours/week"
	Status              string    `json:"status" dynamodbav:"status"`
	MaxVolunteers       int       `json:"max_volunteers" dynamodbav:"max_volunteers"` // 0 = unlimited
	CurrentApplications int       `json:"current_applications" dynamodbav:"current_applications"`
	CreatedAt           time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// Open reports whether the opportunity still accepts applications.
func (o *VolunteerOpportunity) Open() bool {
	return o.Status == OpportunityOpen
}

type VolunteerApplication struct {
	ApplicationID string    `json:"id" dynamodbav:"application_id"`
	OpportunityID string    `json:"opportunity_id" dynamodbav:"opportunity_id"`
	Name          string    `json:"name" dynamodbav:"name"`
	Email         string    `json:"email" dynamodbav:"email"`
	Phone         string    `json:"phone,omitempty" dynamodbav:"phone"`
	Skills        string    `json:"skills,omitempty" dynamodbav:"skills"`
	Availability  string    `json:"availability,omitempty" dynamodbav:"availability"`
	Status        string    `json:"status" dynamodbav:"status"`
	CreatedAt     time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// Active reports whether the application still counts against capacity.
func (a *VolunteerApplication) Active() bool {
	return a.Status != VolunteerRejected
}

type OpportunityInput struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description"`
	Commitment    string `json:"commitment"`
	MaxVolunteers int    `json:"max_volunteers" validate:"gte=0"`
}

type UpdateOpportunityRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Commitment    *string `json:"commitment"`
	Status        *string `json:"status" validate:"omitempty,oneof=open closed"`
	MaxVolunteers *int    `json:"max_volunteers" validate:"omitempty,gte=0"`
}

type VolunteerApplyRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone"`
	Skills       string `json:"skills"`
	Availability string `json:"availability"`
	OTPCode      string `json:"otp_code" validate:"required"`
}
