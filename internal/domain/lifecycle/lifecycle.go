// Package lifecycle holds process-wide startup and shutdown settings.
package lifecycle

import "time"

// DefaultTimeout bounds every fx OnStart/OnStop hook.
const DefaultTimeout = 15 * time.Second
