package domain

import "time"

// Contact message statuses.
const (
	MessageUnread  = "unread"
	MessageRead    = "read"
	MessageReplied = "replied"
)

// Message is a contact-form submission from a site visitor.
type Message struct {
	MessageID string     `json:"id" dynamodbav:"message_id"`
	Name      string     `json:"name" dynamodbav:"name"`
	Email     string     `json:"email" dynamodbav:"email"`
	Subject   string     `json:"subject,omitempty" dynamodbav:"subject"`
	Body      string     `json:"body" dynamodbav:"body"`
	Status    string     `json:"status" dynamodbav:"status"`
	ReplyText string     `json:"reply_text,omitempty" dynamodbav:"reply_text"`
	RepliedAt *time.Time `json:"replied_at,omitempty" dynamodbav:"replied_at"`
	CreatedAt time.Time  `json:"created_at" dynamodbav:"created_at"`
}

type MessageInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject"`
	Body    string `json:"body" validate:"required"`
}

type ReplyMessageRequest struct {
	Reply string `json:"reply" validate:"required"`
}
