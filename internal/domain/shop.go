package domain

import "time"

// Shop (boutique) is the tenant unit: one admin owner, many staff
// members. Staff inherit the shop scope for account fan-out operations.
type Shop struct {
	ID        string
	Name      string
	AdminID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShopScope is the resolved (shop, admin, staff) context every ledger
// operation needs. It is resolved once per request and passed through
// instead of re-querying inside each rule.
type ShopScope struct {
	ShopID   string
	AdminID  string
	StaffIDs []string
}

// Validate checks the scope is internally consistent. A scope without an
// admin means the shop/admin link is broken.
func (s ShopScope) Validate() error {
	if s.AdminID == "" {
		return ErrPrerequisiteAccountMissing
	}
	return nil
}

// Members returns the admin followed by all staff members.
func (s ShopScope) Members() []string {
	members := make([]string, 0, len(s.StaffIDs)+1)
	members = append(members, s.AdminID)
	members = append(members, s.StaffIDs...)
	return members
}

// HasMember reports whether the given actor belongs to the shop.
func (s ShopScope) HasMember(actorID string) bool {
	if actorID == s.AdminID {
		return true
	}
	for _, id := range s.StaffIDs {
		if id == actorID {
			return true
		}
	}
	return false
}
