package domain

import "time"

// Event statuses. Cancelled and completed events stop accepting registrations.
const (
	EventUpcoming  = "upcoming"
	EventOngoing   = "ongoing"
	EventCompleted = "completed"
	EventCancelled = "cancelled"
)

type Event struct {
	EventID              string    `json:"id" dynamodbav:"event_id"`
	Title                string    `json:"title" dynamodbav:"title"`
	Description          string    `json:"description" dynamodbav:"description"`
	StartDate            time.Time `json:"start_date" dynamodbav:"start_date"`
	EndDate              time.Time `json:"end_date" dynamodbav:"end_date"`
	Location             string    `json:"location" dynamodbav:"location"`
	Mode                 string    `json:"mode" dynamodbav:"mode"` // "online" | "offline" | "hybrid"
	Status               string    `json:"status" dynamodbav:"status"`
	MaxParticipants      int       `json:"max_participants" dynamodbav:"max_participants"` // 0 = unlimited
	CurrentRegistrations int       `json:"current_registrations" dynamodbav:"current_registrations"`
	ImageURL             string    `json:"image_url,omitempty" dynamodbav:"image_url"`
	CreatedAt            time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// Open reports whether the event still accepts registrations.
func (e *Event) Open() bool {
	return e.Status == EventUpcoming || e.Status == EventOngoing
}

type EventInput struct {
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description"`
	StartDate       string `json:"start_date" validate:"required"` // YYYY-MM-DD
	EndDate         string `json:"end_date" validate:"required"`   // YYYY-MM-DD
	Location        string `json:"location"`
	Mode            string `json:"mode" validate:"omitempty,oneof=online offline hybrid"`
	MaxParticipants int    `json:"max_participants" validate:"gte=0"`
	ImageURL        string `json:"image_url"`
}

type UpdateEventRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
	Location        *string `json:"location"`
	Mode            *string `json:"mode" validate:"omitempty,oneof=online offline hybrid"`
	Status          *string `json:"status" validate:"omitempty,oneof=upcoming ongoing completed cancelled"`
	MaxParticipants *int    `json:"max_participants" validate:"omitempty,gte=0"`
	ImageURL        *string `json:"image_url"`
}
