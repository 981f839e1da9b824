package authz

import "fmt"

// RoleSeed 预置角色
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

var builtinRoles = []RoleSeed{
	{
		Role:     "readonly_auditor",
		Policies: []Policy{{Object: "/admin/*", Action: "GET"}},
	},
	{
		Role:     "catalog_manager",
		Inherits: []string{"readonly_auditor"},
		Policies: append(crud("/admin/fandoms", "/admin/categories", "/admin/products"),
			Policy{Object: "/admin/pre-orders", Action: "GET"},
			Policy{Object: "/admin/custom-requests/:id/quote", Action: "POST"},
		),
	},
	{
		Role:     "support",
		Inherits: []string{"readonly_auditor"},
		Policies: []Policy{
			{Object: "/admin/orders", Action: "GET"},
			{Object: "/admin/orders/:id", Action: "GET"},
			{Object: "/admin/orders/:id", Action: "PATCH"},
			{Object: "/admin/tickets", Action: "GET"},
			{Object: "/admin/tickets/:id", Action: "GET"},
			{Object: "/admin/tickets/:id", Action: "PATCH"},
			{Object: "/admin/custom-requests", Action: "GET"},
			{Object: "/admin/custom-requests/:id", Action: "*"},
			{Object: "/admin/users", Action: "GET"},
			{Object: "/admin/users/:id", Action: "GET"},
			{Object: "/admin/users/batch-status", Action: "PUT"},
		},
	},
}

// crud 集合路由与 :id 路由的全部方法
func crud(collections ...string) []Policy {
	out := make([]Policy, 0, len(collections)*2)
	for _, base := range collections {
		out = append(out, Policy{Object: base, Action: "*"}, Policy{Object: base + "/:id", Action: "*"})
	}
	return out
}

// BuiltinRoleSeeds 预置角色副本
func BuiltinRoleSeeds() []RoleSeed {
	out := make([]RoleSeed, len(builtinRoles))
	copy(out, builtinRoles)
	return out
}

// IsBuiltinRole 判断规范化后的角色是否为预置角色
func IsBuiltinRole(role string) bool {
	for _, seed := range builtinRoles {
		if name, err := NormalizeRole(seed.Role); err == nil && name == role {
			return true
		}
	}
	return false
}

// BootstrapBuiltinRoles 写入预置角色、继承关系与策略，重复执行无副作用
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.ready(); err != nil {
		return err
	}
	for _, seed := range builtinRoles {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
		}
		for _, parent := range seed.Inherits {
			parentRole, err := s.EnsureRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link %s to %s: %w", role, parentRole, err)
			}
		}
		for _, policy := range seed.Policies {
			if err := s.GrantRolePolicy(role, policy.Object, policy.Action); err != nil {
				return fmt.Errorf("seed %s: %w", role, err)
			}
		}
	}
	return nil
}
