// Package lifecycle holds shared timing constants for fx start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds every OnStart/OnStop hook (pings, graceful shutdown, publisher flush).
const DefaultTimeout = 15 * time.Second
