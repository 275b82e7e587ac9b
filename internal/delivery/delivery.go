// Package delivery holds the inbound adapters of the application.
package delivery

import "context"

// Delivery is a long-running inbound adapter started by the application lifecycle.
type Delivery interface {
	// Serve blocks until the adapter stops. A graceful shutdown returns nil.
	Serve(ctx context.Context) error
}
