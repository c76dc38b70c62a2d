// Package client provides an HTTP implementation of domain.DaemonClient for
// the bakkey CLI.
//
// All requests are JSON over HTTP and accept a context for cancellation and
// deadlines. Non-2xx responses are returned as *Error carrying the daemon's
// gRPC-style code and message.
package client
