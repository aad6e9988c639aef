package domain

import "time"

// Teacher application statuses.
const (
	ApplicationPending     = "pending"
	ApplicationUnderReview = "under_review"
	ApplicationApproved    = "approved"
	ApplicationRejected    = "rejected"
)

// Teacher enrollment statuses.
const (
	EnrollmentEnrolled  = "enrolled"
	EnrollmentCompleted = "completed"
	EnrollmentWithdrawn = "withdrawn"
)

// TeacherApplication is a request to join the teacher training program.
type TeacherApplication struct {
	ApplicationID  string    `json:"id" dynamodbav:"application_id"`
	Name           string    `json:"name" dynamodbav:"name"`
	Email          string    `json:"email" dynamodbav:"email"`
	Phone          string    `json:"phone,omitempty" dynamodbav:"phone"`
	City           string    `json:"city,omitempty" dynamodbav:"city"`
	Country        string    `json:"country,omitempty" dynamodbav:"country"`
	Occupation     string    `json:"occupation,omitempty" dynamodbav:"occupation"`
	YearsPractice  int       `json:"years_practice" dynamodbav:"years_practice"`
	Motivation     string    `json:"motivation" dynamodbav:"motivation"`
	Status         string    `json:"status" dynamodbav:"status"`
	ReviewNote     string    `json:"review_note,omitempty" dynamodbav:"review_note"`
	CreatedAt      time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// Active reports whether the application still blocks a new one for the same
// email. Only a rejected applicant may apply again.
func (a *TeacherApplication) Active() bool {
	return a.Status != ApplicationRejected
}

// TeacherEnrollment records an approved applicant's enrollment in a training
// course batch.
type TeacherEnrollment struct {
	EnrollmentID string    `json:"id" dynamodbav:"enrollment_id"`
	Name         string    `json:"name" dynamodbav:"name"`
	Email        string    `json:"email" dynamodbav:"email"`
	Phone        string    `json:"phone,omitempty" dynamodbav:"phone"`
	CourseBatch  string    `json:"course_batch" dynamodbav:"course_batch"`
	Status       string    `json:"status" dynamodbav:"status"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// Active reports whether the enrollment still blocks a new one for the same
// (email, batch). Only a withdrawn enrollee may enroll in the batch again.
func (e *TeacherEnrollment) Active() bool {
	return e.Status != EnrollmentWithdrawn
}

type TeacherApplyRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone"`
	City          string `json:"city"`
	Country       string `json:"country"`
	Occupation    string `json:"occupation"`
	YearsPractice int    `json:"years_practice" validate:"gte=0"`
	Motivation    string `json:"motivation" validate:"required"`
	OTPCode       string `json:"otp_code" validate:"required"`
}

type TeacherEnrollRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	CourseBatch string `json:"course_batch" validate:"required"`
	OTPCode     string `json:"otp_code" validate:"required"`
}
