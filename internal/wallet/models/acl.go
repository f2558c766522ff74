package models

import "slices"

// AccessControlList is the set of organizations allowed to deposit chaincerts
// into a wallet. Members are unique; insertion order is kept so enumeration is stable.
type AccessControlList struct {
	Organizations []OrganizationID `json:"organizations"`
}

// NewAccessControlList returns a list holding org as its only member.
func NewAccessControlList(org OrganizationID) AccessControlList {
	return AccessControlList{Organizations: []OrganizationID{org}}
}

// Contains reports whether org is a member.
func (l AccessControlList) Contains(org OrganizationID) bool {
	return slices.Contains(l.Organizations, org)
}

// Len returns the number of members.
func (l AccessControlList) Len() int {
	return len(l.Organizations)
}

// With returns a copy of the list with org appended. Callers check Contains first.
func (l AccessControlList) With(org OrganizationID) AccessControlList {
	orgs := make([]OrganizationID, 0, len(l.Organizations)+1)
	orgs = append(orgs, l.Organizations...)
	return AccessControlList{Organizations: append(orgs, org)}
}

// Without returns a copy of the list with org removed.
func (l AccessControlList) Without(org OrganizationID) AccessControlList {
	orgs := make([]OrganizationID, 0, len(l.Organizations))
	for _, member := range l.Organizations {
		if member != org {
			orgs = append(orgs, member)
		}
	}
	return AccessControlList{Organizations: orgs}
}

// List returns a copy of the members in enumeration order.
func (l AccessControlList) List() []OrganizationID {
	return slices.Clone(l.Organizations)
}
