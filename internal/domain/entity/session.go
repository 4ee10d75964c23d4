package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionCredential is a signed, self-contained bearer token issued after reconciliation.
// It carries a snapshot of the account's roles so authorization needs no repository lookup.
type SessionCredential struct {
	Token     string
	Subject   uuid.UUID
	Email     string
	Roles     Roles
	IssuedAt  time.Time
	ExpiresAt time.Time
}
