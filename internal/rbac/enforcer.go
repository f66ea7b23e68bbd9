// Package rbac gates the RPC surface by the role carried in the bearer token.
package rbac

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleViewer  = "viewer"
	RoleHRAdmin = "hr_admin"

	ResourceRPC    = "rpc"
	ResourceExport = "export"

	ActionRead  = "read"
	ActionWrite = "write"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// hr_admin inherits every viewer permission.
var (
	defaultPolicies = [][]string{
		{RoleViewer, ResourceRPC, ActionRead},
		{RoleViewer, ResourceExport, ActionRead},
		{RoleHRAdmin, ResourceRPC, ActionWrite},
	}
	defaultGroupings = [][]string{
		{RoleHRAdmin, RoleViewer},
	}
)

// NewEnforcer builds an in-memory enforcer loaded with the default policy.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("rbac model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("rbac enforcer: %w", err)
	}
	if _, err := e.AddPolicies(defaultPolicies); err != nil {
		return nil, fmt.Errorf("rbac policies: %w", err)
	}
	if _, err := e.AddGroupingPolicies(defaultGroupings); err != nil {
		return nil, fmt.Errorf("rbac roles: %w", err)
	}
	return e, nil
}
