// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"strings"

	"vyapkart/internal/domain/entity"
)

// --- Input DTOs ---

// RegistrationPayload carries the profile and role a caller supplies when signing up.
type RegistrationPayload struct {
	FullName     string
	Phone        string
	Role         string
	BusinessName string
	TaxID        string
}

// IsPureLogin reports whether the payload asks for sign-in only. A nil payload or one with
// a blank role never creates or links an account.
func (p *RegistrationPayload) IsPureLogin() bool {
	return p == nil || strings.TrimSpace(p.Role) == ""
}

// LoginInput defines the data required for a strict login.
type LoginInput struct {
	IDToken string
}

// RegisterInput defines the data required for a strict registration.
type RegisterInput struct {
	IDToken string
	Payload RegistrationPayload
}

// FirebaseLoginInput defines the data for the combined login-or-register flow.
// Payload is optional.
type FirebaseLoginInput struct {
	IDToken string
	Payload *RegistrationPayload
}

// --- Output DTOs ---

// AuthOutput returns the reconciled account together with its new session credential.
type AuthOutput struct {
	Account *entity.Account
	Session *entity.SessionCredential
	// Outcome is one of the service.Outcome* values: authenticated, linked or created.
	Outcome string
}

// AuthUsecase defines the identity reconciliation entry points.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Login signs in an identity that is already linked to an account.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	// Register creates or links an account for an identity that has none.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	// FirebaseLogin runs the full decision tree: authenticate, link by email, or create.
	FirebaseLogin(ctx context.Context, input *FirebaseLoginInput) (*AuthOutput, error)
}
