package server

import "context"

// Server defines the lifecycle contract of the servers managed by this
// package.
//
// Implementations are expected to block in [RunServer] until shutdown is
// requested and to release resources in [Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	// It returns nil after a graceful shutdown.
	RunServer() error

	// Shutdown gracefully stops the server, waiting for in-flight requests
	// until ctx is done.
	Shutdown(ctx context.Context) error
}
