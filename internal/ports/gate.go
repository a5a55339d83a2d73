package ports

import "context"

// ProbeGate is consulted before each measurement.
// Wait blocks until the host is quiet enough to measure or the gate gives up;
// it only returns an error when ctx is done.
type ProbeGate interface {
	Wait(ctx context.Context) error
}
