package domain

import "time"

// Visit is one page-view record from the public site's analytics beacon.
// Date duplicates the day portion of CreatedAt so daily rollups can query the
// date GSI instead of scanning.
type Visit struct {
	VisitID   string    `json:"id" dynamodbav:"visit_id"`
	Date      string    `json:"date" dynamodbav:"date"` // YYYY-MM-DD
	Page      string    `json:"page" dynamodbav:"page"`
	Path      string    `json:"path,omitempty" dynamodbav:"path"`
	VisitorID string    `json:"visitor_id,omitempty" dynamodbav:"visitor_id"`
	Referrer  string    `json:"referrer,omitempty" dynamodbav:"referrer"`
	UserAgent string    `json:"user_agent,omitempty" dynamodbav:"user_agent"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

type VisitInput struct {
	Page      string `json:"page" validate:"required"`
	Path      string `json:"path"`
	VisitorID string `json:"visitor_id"`
	Referrer  string `json:"referrer"`
}

// DailyVisits is one day's aggregated visit count.
type DailyVisits struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// PageVisits is one page's aggregated visit count.
type PageVisits struct {
	Page  string `json:"page"`
	Count int    `json:"count"`
}

// AnalyticsSummary is the admin dashboard rollup.
type AnalyticsSummary struct {
	Days               int           `json:"days"`
	TotalVisits        int           `json:"total_visits"`
	UniqueVisitors     int           `json:"unique_visitors"`
	Daily              []DailyVisits `json:"daily"`
	TopPages           []PageVisits  `json:"top_pages"`
	TotalRegistrations int           `json:"total_registrations"`
	TotalApplications  int           `json:"total_applications"`
}
