package authz

import (
	"fmt"
	"sort"
)

// EnsureRole 确保角色存在，返回带 role: 前缀的规范名
func (s *Service) EnsureRole(raw string) (string, error) {
	role, err := NormalizeRole(raw)
	if err != nil {
		return "", err
	}
	if role == roleAnchor {
		return "", ErrReservedRole
	}
	if err := s.ready(); err != nil {
		return "", err
	}
	if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor); err != nil {
		return "", fmt.Errorf("create role %s: %w", role, err)
	}
	return role, nil
}

// ListRoles 全部角色，按名称排序
func (s *Service) ListRoles() ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	links, err := s.enforcer.GetNamedGroupingPolicy("g")
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	seen := make(map[string]struct{})
	for _, link := range links {
		for _, name := range link {
			if isRoleName(name) {
				seen[name] = struct{}{}
			}
		}
	}
	roles := make([]string, 0, len(seen))
	for role := range seen {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles, nil
}

// DeleteRole 删除自定义角色及其策略、继承与授予关系；预置角色不可删除
func (s *Service) DeleteRole(raw string) error {
	role, err := NormalizeRole(raw)
	if err != nil {
		return err
	}
	if role == roleAnchor {
		return ErrReservedRole
	}
	if IsBuiltinRole(role) {
		return ErrImmutableRole
	}
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.enforcer.RemoveFilteredPolicy(0, role); err != nil {
		return fmt.Errorf("remove policies of %s: %w", role, err)
	}
	for _, field := range []int{0, 1} {
		if _, err := s.enforcer.RemoveFilteredNamedGroupingPolicy("g", field, role); err != nil {
			return fmt.Errorf("remove links of %s: %w", role, err)
		}
	}
	return nil
}

// GrantRolePolicy 为角色授予 (object, action)，角色不存在时创建
func (s *Service) GrantRolePolicy(raw, object, action string) error {
	role, err := s.EnsureRole(raw)
	if err != nil {
		return err
	}
	act := NormalizeAction(action)
	if act == "" {
		return ErrActionRequired
	}
	if _, err := s.enforcer.AddPolicy(role, NormalizeObject(object), act); err != nil {
		return fmt.Errorf("grant %s %s to %s: %w", act, object, role, err)
	}
	return nil
}

// RevokeRolePolicy 撤销角色的 (object, action)
func (s *Service) RevokeRolePolicy(raw, object, action string) error {
	role, err := NormalizeRole(raw)
	if err != nil {
		return err
	}
	act := NormalizeAction(action)
	if act == "" {
		return ErrActionRequired
	}
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.enforcer.RemovePolicy(role, NormalizeObject(object), act); err != nil {
		return fmt.Errorf("revoke %s %s from %s: %w", act, object, role, err)
	}
	return nil
}

// GetRolePolicies 角色自身的策略
func (s *Service) GetRolePolicies(raw string) ([]Policy, error) {
	role, err := NormalizeRole(raw)
	if err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rules, err := s.enforcer.GetFilteredPolicy(0, role)
	if err != nil {
		return nil, fmt.Errorf("get policies of %s: %w", role, err)
	}
	policies := toPolicies(rules)
	sortPolicies(policies)
	return policies, nil
}
