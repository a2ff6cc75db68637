package access

import "github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"

// Action names an operation guarded by the policy.
type Action string

const (
	ActionTourList           Action = "tour.list"
	ActionTourRead           Action = "tour.read"
	ActionDestinationList    Action = "destination.list"
	ActionDestinationRead    Action = "destination.read"
	ActionReviewListApproved Action = "review.list_approved"

	ActionReviewCreate   Action = "review.create"
	ActionOrderCreate    Action = "order.create"
	ActionTicketCreate   Action = "ticket.create"
	ActionFavoriteCreate Action = "favorite.create"

	ActionProfileRead    Action = "profile.read"
	ActionProfileUpdate  Action = "profile.update"
	ActionOrderRead      Action = "order.read"
	ActionOrderListOwn   Action = "order.list_own"
	ActionTicketRead     Action = "ticket.read"
	ActionTicketListOwn  Action = "ticket.list_own"
	ActionTicketReply    Action = "ticket.reply"
	ActionFavoriteList   Action = "favorite.list"
	ActionFavoriteDelete Action = "favorite.delete"
	ActionReviewListOwn  Action = "review.list_own"

	ActionReviewApprove            Action = "review.approve"
	ActionReviewDelete             Action = "review.delete"
	ActionReviewListAll            Action = "review.list_all"
	ActionUserList                 Action = "user.list"
	ActionUserUpdateRole           Action = "user.update_role"
	ActionUserDelete               Action = "user.delete"
	ActionDestinationDeleteCascade Action = "destination.delete_cascade"

	ActionDestinationCreate  Action = "destination.create"
	ActionDestinationUpdate  Action = "destination.update"
	ActionDestinationDelete  Action = "destination.delete"
	ActionTourCreate         Action = "tour.create"
	ActionTourUpdate         Action = "tour.update"
	ActionTourDelete         Action = "tour.delete"
	ActionTicketListAll      Action = "ticket.list_all"
	ActionTicketUpdateStatus Action = "ticket.update_status"
	ActionTicketRespondStaff Action = "ticket.respond_staff"
	ActionStatsRead          Action = "stats.read"

	ActionOrderUpdateStatus Action = "order.update_status"
	ActionOrderListAll      Action = "order.list_all"
)

type roleSet map[domain.Role]struct{}

func roles(rs ...domain.Role) roleSet {
	set := make(roleSet, len(rs))
	for _, r := range rs {
		set[r] = struct{}{}
	}
	return set
}

func (s roleSet) has(r domain.Role) bool {
	_, ok := s[r]
	return ok
}

type rule struct {
	public      bool
	roles       roleSet
	ownership   bool
	protectSelf bool
}

// Allow-sets are explicit per action. ADMIN is not assumed to inherit
// MANAGER permissions; each set names every role it admits.
var (
	anyone        = rule{public: true}
	authenticated = rule{roles: roles(domain.RoleUser, domain.RoleManager, domain.RoleAdmin)}
	owner         = rule{roles: roles(domain.RoleUser, domain.RoleManager, domain.RoleAdmin), ownership: true}
	adminOnly     = rule{roles: roles(domain.RoleAdmin)}
	staff         = rule{roles: roles(domain.RoleManager, domain.RoleAdmin)}
)

var rules = map[Action]rule{
	ActionTourList:           anyone,
	ActionTourRead:           anyone,
	ActionDestinationList:    anyone,
	ActionDestinationRead:    anyone,
	ActionReviewListApproved: anyone,

	ActionReviewCreate:   authenticated,
	ActionOrderCreate:    authenticated,
	ActionTicketCreate:   authenticated,
	ActionFavoriteCreate: authenticated,

	ActionProfileRead:    owner,
	ActionProfileUpdate:  owner,
	ActionOrderRead:      owner,
	ActionOrderListOwn:   owner,
	ActionTicketRead:     owner,
	ActionTicketListOwn:  owner,
	ActionTicketReply:    owner,
	ActionFavoriteList:   owner,
	ActionFavoriteDelete: owner,
	ActionReviewListOwn:  owner,

	ActionReviewApprove:            adminOnly,
	ActionReviewDelete:             adminOnly,
	ActionReviewListAll:            adminOnly,
	ActionUserList:                 adminOnly,
	ActionUserUpdateRole:           adminOnly,
	ActionUserDelete:               {roles: roles(domain.RoleAdmin), protectSelf: true},
	ActionDestinationDeleteCascade: adminOnly,

	ActionDestinationCreate:  staff,
	ActionDestinationUpdate:  staff,
	ActionDestinationDelete:  staff,
	ActionTourCreate:         staff,
	ActionTourUpdate:         staff,
	ActionTourDelete:         staff,
	ActionTicketListAll:      staff,
	ActionTicketUpdateStatus: staff,
	ActionTicketRespondStaff: staff,
	ActionStatsRead:          staff,

	ActionOrderUpdateStatus: staff,
	ActionOrderListAll:      staff,
}
