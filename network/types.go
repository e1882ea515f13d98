package network

import "errors"

// Sentinel errors for ConnectionNetwork operations.
var (
	// ErrNetNotFound indicates a hint or lookup handle does not resolve
	// to a live net.
	ErrNetNotFound = errors.New("network: closed net not found")
)
