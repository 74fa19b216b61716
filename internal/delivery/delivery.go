// Package delivery defines the transports that expose the use cases.
package delivery

import "context"

// Delivery is a long-running transport started by the application after fx has wired it.
type Delivery interface {
	// Serve blocks until the transport stops. A graceful shutdown returns nil.
	Serve(ctx context.Context) error
}
