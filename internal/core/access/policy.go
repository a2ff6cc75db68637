// Package access decides whether a session may perform an action on a
// resource. Decisions are pure: nothing here touches a store.
//
// Checks run in a fixed order and stop at the first failure:
//
//	authentication → role allow-set → ownership (waived for staff) → self-protection
package access

import "github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"

// Session is the resolved identity of the caller. A nil *Session is an
// anonymous visitor.
type Session struct {
	UserID string
	Role   domain.Role
	Email  string
	Name   string
}

// IsStaff reports whether the session belongs to a MANAGER or ADMIN.
func (s *Session) IsStaff() bool {
	return s != nil && s.Role.IsStaff()
}

// Resource identifies the owner of the record an action targets.
// For User records the owner is the user itself.
type Resource struct {
	OwnerID string
}

// Check runs the authentication and role steps only. Route middleware uses it
// before any request body is read.
func Check(s *Session, action Action) error {
	r, ok := rules[action]
	if !ok {
		return domain.ErrForbidden
	}
	if r.public {
		return nil
	}
	if s == nil || s.UserID == "" {
		return domain.ErrUnauthenticated
	}
	if !r.roles.has(s.Role) {
		return domain.ErrForbidden
	}
	return nil
}

// Authorize runs every step against a loaded resource.
func Authorize(s *Session, action Action, res Resource) error {
	if err := Check(s, action); err != nil {
		return err
	}
	r := rules[action]
	if r.ownership && res.OwnerID != s.UserID && !s.IsStaff() {
		return domain.ErrForbidden
	}
	if r.protectSelf && res.OwnerID == s.UserID {
		return domain.ErrSelfDelete
	}
	return nil
}

// Allowed lists the roles permitted to perform action. Public actions return nil.
func Allowed(action Action) []domain.Role {
	r, ok := rules[action]
	if !ok || r.public {
		return nil
	}
	out := make([]domain.Role, 0, len(r.roles))
	for _, role := range domain.Roles {
		if r.roles.has(role) {
			out = append(out, role)
		}
	}
	return out
}
