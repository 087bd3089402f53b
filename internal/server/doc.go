// Package server runs the notes HTTP API and the gRPC health service.
//
// Both transports share one signal-aware lifecycle: a failure or a stop
// signal shuts every running server down, bounded by the configured
// shutdown timeout.
package server
