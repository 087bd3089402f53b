package server

import "context"

// Server defines the common lifecycle contract for transport servers managed
// by this package.
//
// Implementations block in [RunServer] until the server stops and release
// their listeners in [Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	// A stop caused by Shutdown is not an error.
	RunServer(ctx context.Context) error

	// Shutdown stops the server. In-flight requests are drained until ctx
	// is done, after which remaining connections are closed forcibly.
	Shutdown(ctx context.Context) error
}
