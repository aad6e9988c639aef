package domain

import "time"

// Resource types.
const (
	ResourceVideo = "video"
	ResourceAudio = "audio"
	ResourcePDF   = "pdf"
	ResourceLink  = "link"
)

// Resource is a downloadable or linked meditation resource. FileURL points at
// an uploaded object or an external URL depending on Type.
type Resource struct {
	ResourceID  string    `json:"id" dynamodbav:"resource_id"`
	Title       string    `json:"title" dynamodbav:"title"`
	Description string    `json:"description,omitempty" dynamodbav:"description"`
	Type        string    `json:"type" dynamodbav:"type"`
	Category    string    `json:"category,omitempty" dynamodbav:"category"`
	FileURL     string    `json:"file_url" dynamodbav:"file_url"`
	Published   bool      `json:"published" dynamodbav:"published"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

type ResourceInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Type        string `json:"type" validate:"required,oneof=video audio pdf link"`
	Category    string `json:"category"`
	FileURL     string `json:"file_url" validate:"required"`
	Published   *bool  `json:"published"`
}

type UpdateResourceRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Type        *string `json:"type" validate:"omitempty,oneof=video audio pdf link"`
	Category    *string `json:"category"`
	FileURL     *string `json:"file_url"`
	Published   *bool   `json:"published"`
}
