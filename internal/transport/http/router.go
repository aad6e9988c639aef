package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/application/analytics"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/application/auth"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/application/content"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/application/event"
	fileapp "github.com/sumasrimallavolu/buddha-ceo-api/internal/application/file"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/application/message"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/application/registration"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/application/resource"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/application/subscriber"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/application/teacher"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/application/user"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/application/verification"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/application/volunteer"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/config"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/transport/http/handler"
	appmiddleware "github.com/sumasrimallavolu/buddha-ceo-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// OTP and login endpoints: 5 requests/second, burst of 10 per IP.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	otpTTL := time.Duration(cfg.OTPTTLMinutes) * time.Minute
	verifySvc := verification.NewService(deps.VerificationRepo, deps.Mailer, otpTTL)
	eventSvc := event.NewService(deps.EventRepo)
	regSvc := registration.NewService(deps.EventRepo, deps.RegistrationRepo, verifySvc, deps.Mailer, deps.SMSSender, cfg.SMSEnabled)
	teacherSvc := teacher.NewService(deps.TeacherAppRepo, deps.EnrollmentRepo, verifySvc, deps.Mailer)
	volunteerSvc := volunteer.NewService(deps.OpportunityRepo, deps.VolunteerAppRepo, verifySvc, deps.Mailer)
	contentSvc := content.NewService(deps.ContentRepo)
	resourceSvc := resource.NewService(deps.ResourceRepo)
	messageSvc := message.NewService(deps.MessageRepo, deps.Mailer)
	subscriberSvc := subscriber.NewService(deps.SubscriberRepo)
	analyticsSvc := analytics.NewService(deps.VisitRepo, deps.RegistrationRepo, deps.TeacherAppRepo)
	fileSvc := fileapp.NewService(deps.S3Store, cfg.MaxUploadSize)
	userSvc := user.NewService(deps.UserRepo)

	healthH := handler.NewHealthHandler()
	eventH := handler.NewEventHandler(eventSvc)
	regH := handler.NewRegistrationHandler(regSvc)
	teacherH := handler.NewTeacherHandler(teacherSvc)
	volunteerH := handler.NewVolunteerHandler(volunteerSvc)
	contentH := handler.NewContentHandler(contentSvc)
	resourceH := handler.NewResourceHandler(resourceSvc)
	messageH := handler.NewMessageHandler(messageSvc)
	subscriberH := handler.NewSubscriberHandler(subscriberSvc)
	analyticsH := handler.NewAnalyticsHandler(analyticsSvc)
	fileH := handler.NewFileHandler(fileSvc)
	userH := handler.NewUserHandler(userSvc)

	var sessionH *handler.SessionHandler
	if deps.JWTProvider != nil {
		sessionH = handler.NewSessionHandler(auth.NewService(deps.UserRepo, deps.JWTProvider))
	}

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health", healthH.Ping)

		r.Get("/events", eventH.ListPublic)
		r.Get("/events/{id}", eventH.Get)
		r.With(sensitiveRL.Limit).Post("/events/{id}/send-otp", regH.SendOTP)
		r.With(sensitiveRL.Limit).Post("/events/{id}/register", regH.Register)

		r.With(sensitiveRL.Limit).Post("/teachers/apply/send-otp", teacherH.SendApplicationOTP)
		r.With(sensitiveRL.Limit).Post("/teachers/apply", teacherH.Apply)
		r.With(sensitiveRL.Limit).Post("/teachers/enroll/send-otp", teacherH.SendEnrollmentOTP)
		r.With(sensitiveRL.Limit).Post("/teachers/enroll", teacherH.Enroll)

		r.Get("/volunteers/opportunities", volunteerH.ListOpen)
		r.Get("/volunteers/opportunities/{id}", volunteerH.GetOpportunity)
		r.With(sensitiveRL.Limit).Post("/volunteers/opportunities/{id}/send-otp", volunteerH.SendOTP)
		r.With(sensitiveRL.Limit).Post("/volunteers/opportunities/{id}/apply", volunteerH.Apply)

		r.Get("/content/{page}", contentH.GetPage)
		r.Get("/resources", resourceH.ListPublic)

		r.Post("/messages", messageH.Submit)
		r.Post("/subscribers", subscriberH.Subscribe)
		r.Post("/subscribers/unsubscribe", subscriberH.Unsubscribe)
		r.Post("/visits", analyticsH.Track)

		if sessionH != nil {
			r.With(sensitiveRL.Limit).Post("/sessions/login", sessionH.Login)
		}

		// ── Admin routes ─────────────────────────────────────────────────────
		r.Route("/admin", func(r chi.Router) {
			r.Use(authMw)

			if sessionH != nil {
				r.Get("/session", sessionH.Current)
			}

			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequirePermission(domain.PermManageEvents))
				r.Get("/events", eventH.ListAll)
				r.Post("/events", eventH.Create)
				r.Put("/events/{id}", eventH.Update)
				r.Delete("/events/{id}", eventH.Delete)
			})

			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequirePermission(domain.PermManageRegistrations))
				r.Get("/events/{id}/registrations", regH.ListByEvent)
				r.Put("/registrations/{id}", regH.UpdateStatus)
			})

			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequirePermission(domain.PermManageTeachers))
				r.Get("/teachers/applications", teacherH.ListApplications)
				r.Put("/teachers/applications/{id}", teacherH.UpdateApplicationStatus)
				r.Get("/teachers/enrollments", teacherH.ListEnrollments)
				r.Put("/teachers/enrollments/{id}", teacherH.UpdateEnrollmentStatus)
			})

			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequirePermission(domain.PermManageVolunteers))
				r.Get("/volunteers/opportunities", volunteerH.ListAll)
				r.Post("/volunteers/opportunities", volunteerH.Create)
				r.Put("/volunteers/opportunities/{id}", volunteerH.Update)
				r.Delete("/volunteers/opportunities/{id}", volunteerH.Delete)
				r.Get("/volunteers/opportunities/{id}/applications", volunteerH.ListApplications)
				r.Put("/volunteers/applications/{id}", volunteerH.UpdateApplicationStatus)
			})

			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequirePermission(domain.PermCreateContent))
				r.Get("/content", contentH.ListAll)
				r.Get("/content/{id}", contentH.Get)
				r.Post("/content", contentH.Create)
				r.Put("/content/{id}", contentH.Update)
				r.Post("/content/{id}/submit", contentH.SubmitForReview)
			})
			// The handler additionally requires the publish permission when
			// the decision approves.
			r.With(appmiddleware.RequirePermission(domain.PermReviewContent)).
				Post("/content/{id}/review", contentH.Review)
			r.With(appmiddleware.RequirePermission(domain.PermPublishContent)).
				Delete("/content/{id}", contentH.Delete)

			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequirePermission(domain.PermManageResources))
				r.Get("/resources", resourceH.ListAll)
				r.Get("/resources/{id}", resourceH.Get)
				r.Post("/resources", resourceH.Create)
				r.Put("/resources/{id}", resourceH.Update)
				r.Delete("/resources/{id}", resourceH.Delete)
			})

			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRoleLevel(domain.RoleContentReviewer))
				r.Post("/files", fileH.Upload)
				r.Delete("/files", fileH.Delete)
			})

			r.With(appmiddleware.RequirePermission(domain.PermReadMessage)).
				Get("/messages", messageH.List)
			r.With(appmiddleware.RequirePermission(domain.PermReadMessage)).
				Get("/messages/{id}", messageH.Get)
			r.With(appmiddleware.RequirePermission(domain.PermReplyMessage)).
				Post("/messages/{id}/reply", messageH.Reply)
			r.With(appmiddleware.RequirePermission(domain.PermDeleteMessage)).
				Delete("/messages/{id}", messageH.Delete)

			r.With(appmiddleware.RequirePermission(domain.PermManageSubscribers)).
				Get("/subscribers", subscriberH.List)

			r.With(appmiddleware.RequirePermission(domain.PermViewAnalytics)).
				Get("/analytics", analyticsH.Summary)

			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequirePermission(domain.PermManageUsers))
				r.Get("/users", userH.List)
				r.Post("/users", userH.Create)
				r.Get("/users/{id}", userH.Get)
				r.Put("/users/{id}", userH.Update)
				r.Delete("/users/{id}", userH.Delete)
			})
		})
	})

	return r
}
