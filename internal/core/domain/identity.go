package domain

// Identity is the authenticated caller of a request, with its role resolved
// to a permission bag.
type Identity struct {
	ID       string
	Username string
	Role     ResolvedRole
}

// Can reports whether the identity holds capability c. A nil identity holds nothing.
func (i *Identity) Can(c Capability) bool {
	return i != nil && i.Role.Can(c)
}

// SeesAllReports reports whether report reads are unscoped.
func (i *Identity) SeesAllReports() bool {
	return i.Can(CanViewAllReports)
}

// CanRead reports whether the identity may read r.
func (i *Identity) CanRead(r *Report) bool {
	if i == nil {
		return false
	}
	return i.SeesAllReports() || r.OwnedBy(i.ID)
}
