package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
)

// ErrVerification is the umbrella error for all OTP check failures. Handlers
// collapse every sub-kind into one generic client message so responses don't
// reveal whether a code existed, expired, or simply didn't match.
var ErrVerification = errors.New("invalid or expired verification code")

// Verification failure sub-kinds. Each wraps ErrVerification so callers can
// branch on the umbrella sentinel while logs keep the precise cause.
var (
	ErrCodeNotFound = wrapVerification("code not found")
	ErrCodeExpired  = wrapVerification("code expired")
	ErrCodeConsumed = wrapVerification("code already consumed")
	ErrCodeMismatch = wrapVerification("code mismatch")
)

// Conflict sub-kinds surfaced with specific user-facing messages.
var (
	ErrCapacityFull   = errors.New("registration is full")
	ErrDuplicateEntry = errors.New("already registered")
	ErrTargetClosed   = errors.New("no longer accepting submissions")
)

type verificationErr struct{ kind string }

func (e *verificationErr) Error() string { return e.kind }
func (e *verificationErr) Unwrap() error { return ErrVerification }

func wrapVerification(kind string) error { return &verificationErr{kind: kind} }
