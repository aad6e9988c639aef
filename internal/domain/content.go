package domain

import "time"

// Content moderation statuses. Only published sections are served publicly.
const (
	ContentDraft         = "draft"
	ContentPendingReview = "pending_review"
	ContentPublished     = "published"
	ContentRejected      = "rejected"
)

// ContentItem is one editable section of a public page (about, team members,
// photo gallery entries, home banners).
type ContentItem struct {
	ContentID  string    `json:"id" dynamodbav:"content_id"`
	Page       string    `json:"page" dynamodbav:"page"`       // "home" | "about" | "team" | "photos"
	Section    string    `json:"section" dynamodbav:"section"` // page-specific slot, e.g. "banner", "mission"
	Title      string    `json:"title" dynamodbav:"title"`
	Body       string    `json:"body" dynamodbav:"body"`
	ImageURL   string    `json:"image_url,omitempty" dynamodbav:"image_url"`
	SortOrder  int       `json:"sort_order" dynamodbav:"sort_order"`
	Status     string    `json:"status" dynamodbav:"status"`
	AuthorID   string    `json:"author_id" dynamodbav:"author_id"`
	ReviewerID string    `json:"reviewer_id,omitempty" dynamodbav:"reviewer_id"`
	ReviewNote string    `json:"review_note,omitempty" dynamodbav:"review_note"`
	CreatedAt  time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

type ContentInput struct {
	Page      string `json:"page" validate:"required"`
	Section   string `json:"section" validate:"required"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	ImageURL  string `json:"image_url"`
	SortOrder int    `json:"sort_order"`
}

type UpdateContentRequest struct {
	Section   *string `json:"section"`
	Title     *string `json:"title"`
	Body      *string `json:"body"`
	ImageURL  *string `json:"image_url"`
	SortOrder *int    `json:"sort_order"`
}

// ReviewContentRequest carries a moderation decision.
type ReviewContentRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}
