package domain

import "time"

// SectionState reports whether a section's local copy matches the server.
type SectionState string

// Section states.
const (
	// SectionClean means the cached section was last written from a server response.
	SectionClean SectionState = "clean"

	// SectionPendingLocal means a mutation was applied locally after the server write failed.
	SectionPendingLocal SectionState = "pending_local"

	// SectionError means neither the server nor the local cache accepted the last mutation.
	SectionError SectionState = "error"
)

// String returns the string representation.
func (s SectionState) String() string {
	return string(s)
}

// SectionStatus is the sync state of one section plus the failure behind it.
type SectionStatus struct {
	Section   Section
	State     SectionState
	LastError string
	UpdatedAt time.Time
}

// SyncPolicy controls what a mutation does when the server write fails.
type SyncPolicy string

// Sync policies.
const (
	// SyncPolicyFallbackLocal applies the mutation to the local cache and reports success.
	SyncPolicyFallbackLocal SyncPolicy = "fallback_local"

	// SyncPolicyStrict returns the server error and leaves the cache untouched.
	SyncPolicyStrict SyncPolicy = "strict"
)

// IsValid returns true if the policy is recognised.
func (p SyncPolicy) IsValid() bool {
	return p == SyncPolicyFallbackLocal || p == SyncPolicyStrict
}

// String returns the string representation.
func (p SyncPolicy) String() string {
	return string(p)
}

// Description returns a human-readable description of the policy.
func (p SyncPolicy) Description() string {
	switch p {
	case SyncPolicyFallbackLocal:
		return "Fallback local (save offline, sync on next pull)"
	case SyncPolicyStrict:
		return "Strict (fail when the server is unreachable)"
	default:
		return "Unknown"
	}
}
