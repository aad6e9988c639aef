package domain

import "time"

// VerificationPurpose names the workflow a code was issued for. A code is
// only valid for the purpose it was issued under.
type VerificationPurpose string

const (
	PurposeEventRegistration    VerificationPurpose = "event_registration"
	PurposeTeacherApplication   VerificationPurpose = "teacher_application"
	PurposeTeacherEnrollment    VerificationPurpose = "teacher_enrollment"
	PurposeVolunteerApplication VerificationPurpose = "volunteer_application"
)

// ValidPurpose reports whether p is one of the closed purpose values.
func ValidPurpose(p VerificationPurpose) bool {
	switch p {
	case PurposeEventRegistration, PurposeTeacherApplication, PurposeTeacherEnrollment, PurposeVolunteerApplication:
		return true
	}
	return false
}

// VerificationCode stores one-time codes for submission workflows.
// PK: identifier (lowercased email), SK: purpose.
// Put on the same key supersedes the previous code, so at most one code per
// (identifier, purpose) pair exists at a time.
// ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type VerificationCode struct {
	Identifier string              `json:"identifier" dynamodbav:"identifier"`
	Purpose    VerificationPurpose `json:"purpose" dynamodbav:"purpose"`
	Code       string              `json:"-" dynamodbav:"code"`
	ExpiresAt  int64               `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
	Consumed   bool                `json:"consumed" dynamodbav:"consumed"`
	CreatedAt  time.Time           `json:"created_at" dynamodbav:"created_at"`
}

// Expired reports whether the code's TTL has passed at the given instant.
func (v *VerificationCode) Expired(now time.Time) bool {
	return now.Unix() > v.ExpiresAt
}
