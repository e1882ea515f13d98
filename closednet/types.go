package closednet

import "errors"

// Sentinel errors for ClosedNet operations.
var (
	// ErrAlreadyPresent indicates Insert was called with a connection
	// that is already present in the net.
	ErrAlreadyPresent = errors.New("closednet: connection already present")

	// ErrNotOpposingPorts names the case of a connection whose two ports
	// do not face opposite directions. No ClosedNet method returns it:
	// ClosedNet never sees port directions (see ClosedNet).
	ErrNotOpposingPorts = errors.New("closednet: ports do not face opposite directions")

	// ErrNotInNet indicates GetCon was called with a port that has no
	// incident edge in this net.
	ErrNotInNet = errors.New("closednet: port has no connection in this net")

	// ErrConnectionAbsent indicates Erase was called with a connection
	// not present in the net.
	ErrConnectionAbsent = errors.New("closednet: connection not present")

	// ErrInputConflict indicates an Insert or MergeFrom would leave a net
	// with two input endpoints.
	ErrInputConflict = errors.New("closednet: net already has an input endpoint")
)
