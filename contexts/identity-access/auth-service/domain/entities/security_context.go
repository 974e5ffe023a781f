package entities

// SecurityContext is the per-request summary of a caller's system-admin
// status and entity memberships. Membership lists stay unresolved for system
// admins: every authorization check short-circuits on the admin flag, so the
// lists are never consulted.
type SecurityContext struct {
	User               User                     `json:"user"`
	IsSystemAdmin      bool                     `json:"isSystemAdmin"`
	OrgMemberships     []OrganizationMembership `json:"orgMemberships,omitempty"`
	ProductMemberships []ProductMembership      `json:"productMemberships,omitempty"`
}

// AuthorizedForOrganization reports whether the context grants access to the
// organization with the given id. Role matching is exact: a route that
// requires a role accepts only that role, never a "higher" one.
func (c SecurityContext) AuthorizedForOrganization(orgID int, required OrganizationRole) bool {
	if c.IsSystemAdmin {
		return true
	}
	for _, membership := range c.OrgMemberships {
		if membership.Entity.ID != orgID {
			continue
		}
		if required == "" || membership.Role == required {
			return true
		}
	}
	return false
}

// AuthorizedForProduct reports whether the context grants access to the
// product with the given id, with the same exact-match role semantics.
func (c SecurityContext) AuthorizedForProduct(productID int, required ProductRole) bool {
	if c.IsSystemAdmin {
		return true
	}
	for _, membership := range c.ProductMemberships {
		if membership.Entity.ID != productID {
			continue
		}
		if required == "" || membership.Role == required {
			return true
		}
	}
	return false
}

// OrganizationIDs lists the distinct organization ids the context is a member of.
func (c SecurityContext) OrganizationIDs() []int {
	return entityIDs(len(c.OrgMemberships), func(i int) int { return c.OrgMemberships[i].Entity.ID })
}

// ProductIDs lists the distinct product ids the context is a member of.
func (c SecurityContext) ProductIDs() []int {
	return entityIDs(len(c.ProductMemberships), func(i int) int { return c.ProductMemberships[i].Entity.ID })
}

func entityIDs(count int, at func(int) int) []int {
	seen := make(map[int]struct{}, count)
	ids := make([]int, 0, count)
	for i := 0; i < count; i++ {
		id := at(i)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
