package rbac

import (
	"github.com/casbin/casbin/v2"
)

const (
	ResourceLeave        = "leave"
	ResourceSubscription = "subscription"

	ActionApply       = "apply"
	ActionHistory     = "history"
	ActionListPending = "list_pending"
	ActionApprove     = "approve"
	ActionReject      = "reject"
	ActionManage      = "manage"
)

type EnforceRequest struct {
	Role     string
	Resource string
	Action   string
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

// NewService loads the fixed two-tier policy: admin inherits everything an
// employee may do and adds the approval-side leave operations.
func NewService(enforcer *casbin.Enforcer) (Service, error) {
	policies := [][]string{
		{"employee", ResourceLeave, ActionApply},
		{"employee", ResourceLeave, ActionHistory},
		{"employee", ResourceSubscription, ActionManage},
		{"admin", ResourceLeave, ActionListPending},
		{"admin", ResourceLeave, ActionApprove},
		{"admin", ResourceLeave, ActionReject},
	}
	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	if _, err := enforcer.AddGroupingPolicy("admin", "employee"); err != nil {
		return nil, err
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	return s.enforcer.Enforce(req.Role, req.Resource, req.Action)
}
