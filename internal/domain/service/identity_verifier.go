package service

import (
	"context"

	"vyapkart/internal/domain/entity"
)

// IdentityVerifier validates ID tokens minted by an external identity provider.
// Implementations return one of ErrMalformedToken, ErrExpiredToken, ErrUntrustedIssuer
// or ErrProviderUnavailable from the domain errors package on failure.
type IdentityVerifier interface {
	// VerifyIDToken checks signature, issuer, audience and expiry and returns the asserted identity.
	VerifyIDToken(ctx context.Context, idToken string) (*entity.IdentityAssertion, error)

	// GetProvider returns the identity provider type.
	GetProvider() entity.ProviderType
}
