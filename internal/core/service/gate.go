package service

import (
	"github.com/adsc/report-system/internal/core/domain"
)

// DenyReason distinguishes a missing identity from a missing capability.
type DenyReason int

const (
	DenyNone DenyReason = iota
	DenyUnauthenticated
	DenyForbidden
)

func (r DenyReason) String() string {
	switch r {
	case DenyUnauthenticated:
		return "unauthenticated"
	case DenyForbidden:
		return "forbidden"
	}
	return "none"
}

// Decision is the outcome of Authorize.
type Decision struct {
	Admit  bool
	Reason DenyReason
}

// Err maps a denial onto the domain sentinels; an admitted decision yields nil.
func (d Decision) Err() error {
	switch d.Reason {
	case DenyUnauthenticated:
		return domain.ErrUnauthenticated
	case DenyForbidden:
		return domain.ErrForbidden
	}
	return nil
}

// Requirement is what an operation demands of its caller. A zero Capability
// only requires an identity.
type Requirement struct {
	Capability domain.Capability
}

// Authorize admits identity when it exists and holds the required capability.
// Row-level scoping of reads is applied separately, after admission.
func Authorize(identity *domain.Identity, req Requirement) Decision {
	if identity == nil {
		return Decision{Reason: DenyUnauthenticated}
	}
	if req.Capability != "" && !identity.Can(req.Capability) {
		return Decision{Reason: DenyForbidden}
	}
	return Decision{Admit: true}
}

// authorize is the service-side guard used before state changes.
func authorize(identity *domain.Identity, c domain.Capability) error {
	return Authorize(identity, Requirement{Capability: c}).Err()
}
