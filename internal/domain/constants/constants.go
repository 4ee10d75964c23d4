// Package constants holds provider names shared by config and infra wiring.
package constants

// Pub/Sub providers accepted in pubsub.provider.
const (
	PubSubProviderNoop   = "noop"
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Identity providers accepted in identity.provider.
const (
	IdentityProviderFirebase = "firebase"
	IdentityProviderGoogle   = "google"
)
