// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile field limits shared by request validation and storage.
const (
	MaxFullNameLength = 255
	PhoneLength       = 10
)

// AccountStatus is the lifecycle state of a local account.
type AccountStatus string

const (
	// AccountStatusActive accounts may sign in.
	AccountStatusActive AccountStatus = "ACTIVE"
	// AccountStatusBlocked accounts were blocked by an administrator.
	AccountStatusBlocked AccountStatus = "BLOCKED"
	// AccountStatusDeleted accounts were removed by their owner.
	AccountStatusDeleted AccountStatus = "DELETED"
)

// String returns the string representation of the AccountStatus.
func (s AccountStatus) String() string {
	return string(s)
}

// Account is the local representation of a marketplace member.
// Email is unique across all accounts; ExternalID is unique when set and empty until the
// account has been linked to an identity provider subject.
type Account struct {
	ID         uuid.UUID     // Local identifier, generated by the database.
	ExternalID string        // Identity provider subject (e.g. Firebase uid). Empty when not linked.
	Email      string        // Primary email, matched against verified identity assertions.
	FullName   string        // Display name supplied at registration.
	Phone      string        // Contact phone supplied at registration.
	Status     AccountStatus // Lifecycle state.
	Roles      Roles         // Roles assigned to the account, in assignment order.
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsLinked reports whether an external identity is attached to the account.
func (a *Account) IsLinked() bool {
	return a.ExternalID != ""
}

// IsActive reports whether the account may be issued a session.
func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// HasRoles reports whether at least one role has been provisioned.
func (a *Account) HasRoles() bool {
	return len(a.Roles) > 0
}
