package service

import (
	"context"
	"time"
)

// AccountEventType names an account lifecycle event.
type AccountEventType string

const (
	// AccountEventRegistered is published when a new account is created.
	AccountEventRegistered AccountEventType = "account.registered"
	// AccountEventLinked is published when an external identity is attached to an existing account.
	AccountEventLinked AccountEventType = "account.linked"
	// AccountEventSellerOnboardingRequested is published when a pending seller profile is created.
	AccountEventSellerOnboardingRequested AccountEventType = "seller.onboarding_requested"
)

// AccountEvent is the payload published to the message queue after a reconciliation commits.
type AccountEvent struct {
	RequestID    string           `json:"request_id,omitempty"` // For distributed tracing
	Type         AccountEventType `json:"type"`
	AccountID    string           `json:"account_id"`
	Email        string           `json:"email"`
	ExternalID   string           `json:"external_id,omitempty"`
	Roles        []string         `json:"roles,omitempty"`
	BusinessName string           `json:"business_name,omitempty"`
	OccurredAt   time.Time        `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishAccountEvent publishes an account lifecycle event
	PublishAccountEvent(ctx context.Context, event *AccountEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
