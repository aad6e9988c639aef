package http

import (
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/infrastructure/dynamo"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/infrastructure/email"
	jwtinfra "github.com/sumasrimallavolu/buddha-ceo-api/internal/infrastructure/jwt"
	s3infra "github.com/sumasrimallavolu/buddha-ceo-api/internal/infrastructure/s3"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router. JWTProvider and
// SMSSender may be nil; the router degrades those features instead of
// refusing to start.
type Deps struct {
	VerificationRepo *dynamo.VerificationRepo
	EventRepo        *dynamo.EventRepo
	RegistrationRepo *dynamo.RegistrationRepo
	TeacherAppRepo   *dynamo.TeacherApplicationRepo
	EnrollmentRepo   *dynamo.TeacherEnrollmentRepo
	OpportunityRepo  *dynamo.VolunteerOpportunityRepo
	VolunteerAppRepo *dynamo.VolunteerApplicationRepo
	ContentRepo      *dynamo.ContentRepo
	ResourceRepo     *dynamo.ResourceRepo
	MessageRepo      *dynamo.MessageRepo
	SubscriberRepo   *dynamo.SubscriberRepo
	VisitRepo        *dynamo.VisitRepo
	UserRepo         *dynamo.UserRepo

	S3Store     *s3infra.Store
	Mailer      email.Mailer
	SMSSender   sns.SMSSender
	JWTProvider *jwtinfra.Provider
}
