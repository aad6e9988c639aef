package domain

import "time"

// Subscriber is a newsletter subscription keyed by lowercased email.
// Unsubscribing flips the flag rather than deleting the record so
// re-subscription keeps the original signup date.
type Subscriber struct {
	Email        string     `json:"email" dynamodbav:"email"`
	Name         string     `json:"name,omitempty" dynamodbav:"name"`
	Subscribed   bool       `json:"subscribed" dynamodbav:"subscribed"`
	SubscribedAt time.Time  `json:"subscribed_at" dynamodbav:"subscribed_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty" dynamodbav:"updated_at"`
}

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}
