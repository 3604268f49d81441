package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks invalid game, project or tool settings.
	ErrConfiguration = errors.New("configuration error")

	// ErrDiscovery marks a failed or unparseable discovery invocation.
	ErrDiscovery = errors.New("discovery failure")

	// ErrProbe marks a failed or timed out single-address probe.
	ErrProbe = errors.New("probe failure")

	// ErrPersistence marks a failure to load or write the server list.
	ErrPersistence = errors.New("persistence error")

	// ErrNoPriorState is returned when discovery failed and there was no
	// previous server list to keep.
	ErrNoPriorState = errors.New("discovery failed and no prior server list exists")

	// ErrInterrupted is returned when the cycle context ends before the
	// list was written. The previous list is left in place.
	ErrInterrupted = errors.New("cycle interrupted")
)

// DiscoveryError describes a failed discovery for one project.
type DiscoveryError struct {
	// Project is the master server project that was queried.
	Project string
	// ExitCode is the exit status of the query tool, or -1 if it did not run.
	ExitCode int
	// Err is the underlying cause.
	Err error
}

func (e *DiscoveryError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("discovery for project %s failed (exit %d): %v", e.Project, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("discovery for project %s failed: %v", e.Project, e.Err)
}

func (e *DiscoveryError) Unwrap() []error {
	return []error{ErrDiscovery, e.Err}
}

// ProbeError describes a failed probe of one address.
type ProbeError struct {
	// Address is the probed server.
	Address string
	// Err is the underlying cause.
	Err error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe of %s failed: %v", e.Address, e.Err)
}

func (e *ProbeError) Unwrap() []error {
	return []error{ErrProbe, e.Err}
}
