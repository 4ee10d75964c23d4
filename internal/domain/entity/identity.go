package entity

// ProviderType names the external identity provider that produced an assertion.
type ProviderType string

const (
	// ProviderTypeFirebase is Firebase Authentication.
	ProviderTypeFirebase ProviderType = "firebase"
	// ProviderTypeGoogle is Google Sign-In (OIDC ID tokens).
	ProviderTypeGoogle ProviderType = "google"
)

// IdentityAssertion is the verified result of an identity provider ID token.
// It is produced by an IdentityVerifier and never persisted.
type IdentityAssertion struct {
	ExternalID string         // Provider subject (Firebase uid / Google sub).
	Email      string         // Email asserted by the provider.
	Provider   ProviderType   // Provider that verified the token.
	RawClaims  map[string]any // Every claim of the verified token, read-only.
}
