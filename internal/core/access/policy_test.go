package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
)

func session(id string, role domain.Role) *Session {
	return &Session{UserID: id, Role: role}
}

func TestCheck_PublicActionsSkipAuthentication(t *testing.T) {
	for _, a := range []Action{ActionTourList, ActionTourRead, ActionDestinationList, ActionDestinationRead, ActionReviewListApproved} {
		assert.NoError(t, Check(nil, a), a)
	}
}

func TestCheck_UnauthenticatedBeforeRole(t *testing.T) {
	err := Check(nil, ActionUserDelete)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	err = Check(&Session{Role: domain.RoleAdmin}, ActionUserDelete)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated, "session without user id is not authenticated")
}

func TestCheck_AllowSets(t *testing.T) {
	user := session("u1", domain.RoleUser)
	manager := session("m1", domain.RoleManager)
	admin := session("a1", domain.RoleAdmin)

	tests := []struct {
		action  Action
		user    bool
		manager bool
		admin   bool
	}{
		{ActionReviewCreate, true, true, true},
		{ActionOrderCreate, true, true, true},
		{ActionTicketCreate, true, true, true},
		{ActionFavoriteCreate, true, true, true},
		{ActionProfileUpdate, true, true, true},
		{ActionOrderListOwn, true, true, true},

		{ActionReviewApprove, false, false, true},
		{ActionReviewDelete, false, false, true},
		{ActionUserList, false, false, true},
		{ActionUserUpdateRole, false, false, true},
		{ActionUserDelete, false, false, true},
		{ActionDestinationDeleteCascade, false, false, true},

		{ActionDestinationCreate, false, true, true},
		{ActionDestinationDelete, false, true, true},
		{ActionTourUpdate, false, true, true},
		{ActionTicketListAll, false, true, true},
		{ActionTicketRespondStaff, false, true, true},
		{ActionOrderUpdateStatus, false, true, true},
		{ActionStatsRead, false, true, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			for _, c := range []struct {
				s       *Session
				allowed bool
			}{{user, tt.user}, {manager, tt.manager}, {admin, tt.admin}} {
				err := Check(c.s, tt.action)
				if c.allowed {
					assert.NoError(t, err, c.s.Role)
				} else {
					assert.ErrorIs(t, err, domain.ErrForbidden, c.s.Role)
				}
			}
		})
	}
}

func TestCheck_UnknownActionIsForbidden(t *testing.T) {
	assert.ErrorIs(t, Check(session("a1", domain.RoleAdmin), Action("nope")), domain.ErrForbidden)
}

func TestAuthorize_Ownership(t *testing.T) {
	res := Resource{OwnerID: "owner"}

	assert.NoError(t, Authorize(session("owner", domain.RoleUser), ActionOrderRead, res))
	assert.ErrorIs(t, Authorize(session("other", domain.RoleUser), ActionOrderRead, res), domain.ErrForbidden)
	assert.NoError(t, Authorize(session("m1", domain.RoleManager), ActionOrderRead, res), "staff waive ownership")
	assert.NoError(t, Authorize(session("a1", domain.RoleAdmin), ActionTicketReply, res), "staff waive ownership")
	assert.ErrorIs(t, Authorize(nil, ActionOrderRead, res), domain.ErrUnauthenticated)
}

func TestAuthorize_RoleFailsBeforeOwnership(t *testing.T) {
	err := Authorize(session("owner", domain.RoleUser), ActionReviewDelete, Resource{OwnerID: "owner"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAuthorize_AdminCannotDeleteSelf(t *testing.T) {
	admin := session("a1", domain.RoleAdmin)

	err := Authorize(admin, ActionUserDelete, Resource{OwnerID: "a1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	assert.Same(t, domain.ErrSelfDelete, err)

	assert.NoError(t, Authorize(admin, ActionUserDelete, Resource{OwnerID: "u2"}))
}

func TestAllowed(t *testing.T) {
	assert.Nil(t, Allowed(ActionTourList))
	assert.Equal(t, []domain.Role{domain.RoleAdmin}, Allowed(ActionUserDelete))
	assert.Equal(t, []domain.Role{domain.RoleManager, domain.RoleAdmin}, Allowed(ActionOrderUpdateStatus))
	assert.Equal(t, domain.Roles, Allowed(ActionReviewCreate))
}
