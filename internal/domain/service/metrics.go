package service

import "time"

// Reconciliation outcomes reported to ReconciliationMetrics.
const (
	OutcomeAuthenticated = "authenticated"
	OutcomeLinked        = "linked"
	OutcomeCreated       = "created"
	OutcomeRejected      = "rejected"
	OutcomeRetried       = "retried"
	OutcomeFailed        = "failed"
)

// ReconciliationMetrics records the outcome and latency of each reconciliation attempt.
type ReconciliationMetrics interface {
	ObserveOutcome(entryPoint, outcome string)
	ObserveDuration(entryPoint string, d time.Duration)
}
