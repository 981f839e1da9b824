package authz

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

type access struct {
	admin  uint
	object string
	action string
	want   bool
}

func assertAccess(t *testing.T, svc *Service, cases []access) {
	t.Helper()
	for _, tc := range cases {
		got, err := svc.EnforceAdmin(tc.admin, tc.object, tc.action)
		if err != nil {
			t.Fatalf("enforce %d %s %s failed: %v", tc.admin, tc.action, tc.object, err)
		}
		if got != tc.want {
			t.Fatalf("enforce %d %s %s want %v got %v", tc.admin, tc.action, tc.object, tc.want, got)
		}
	}
}

func TestEnforceAdminKeyMatch(t *testing.T) {
	svc := newTestService(t)
	if err := svc.GrantRolePolicy("ops", "/admin/products/:id", "get"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if err := svc.SetAdminRoles(1, []string{"ops"}); err != nil {
		t.Fatalf("set roles failed: %v", err)
	}
	assertAccess(t, svc, []access{
		{admin: 1, object: "/api/v1/admin/products/GEN-FIG-0007", action: "get", want: true},
		{admin: 1, object: "/api/v1/admin/products/42", action: "POST", want: false},
		{admin: 1, object: "/api/v1/admin/products", action: "GET", want: false},
		{admin: 2, object: "/api/v1/admin/products/42", action: "GET", want: false},
	})
}

func TestSetAdminRolesReplaces(t *testing.T) {
	svc := newTestService(t)
	if err := svc.GrantRolePolicy("ops", "/admin/orders", "GET"); err != nil {
		t.Fatalf("grant ops failed: %v", err)
	}
	if err := svc.GrantRolePolicy("role:auditor_plus", "/admin/tickets", "GET"); err != nil {
		t.Fatalf("grant auditor_plus failed: %v", err)
	}

	for _, step := range []struct {
		roles []string
		want  string
	}{
		{roles: []string{"ops"}, want: "role:ops"},
		{roles: []string{" auditor_plus "}, want: "role:auditor_plus"},
	} {
		if err := svc.SetAdminRoles(2, step.roles); err != nil {
			t.Fatalf("set roles %v failed: %v", step.roles, err)
		}
		roles, err := svc.GetAdminRoles(2)
		if err != nil {
			t.Fatalf("get roles failed: %v", err)
		}
		if len(roles) != 1 || roles[0] != step.want {
			t.Fatalf("roles want [%s], got %v", step.want, roles)
		}
	}
	assertAccess(t, svc, []access{
		{admin: 2, object: "/admin/orders", action: "GET", want: false},
		{admin: 2, object: "/admin/tickets", action: "GET", want: true},
	})

	policies, err := svc.GetAdminPolicies(2)
	if err != nil {
		t.Fatalf("get admin policies failed: %v", err)
	}
	if len(policies) != 1 || policies[0].Object != "/admin/tickets" {
		t.Fatalf("unexpected admin policies %+v", policies)
	}
}

func TestRoleLifecycle(t *testing.T) {
	svc := newTestService(t)
	role, err := svc.EnsureRole("merch buyer")
	if err != nil {
		t.Fatalf("ensure role failed: %v", err)
	}
	if role != "role:merch_buyer" {
		t.Fatalf("unexpected role name %q", role)
	}
	if err := svc.GrantRolePolicy(role, "/api/v1/admin/pre-orders", "GET"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	policies, err := svc.GetRolePolicies("merch_buyer")
	if err != nil || len(policies) != 1 || policies[0].Object != "/admin/pre-orders" {
		t.Fatalf("unexpected role policies %+v err=%v", policies, err)
	}
	if err := svc.RevokeRolePolicy(role, "/admin/pre-orders", "GET"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if policies, _ := svc.GetRolePolicies(role); len(policies) != 0 {
		t.Fatalf("policy should be revoked, got %+v", policies)
	}
	if err := svc.DeleteRole(role); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	roles, _ := svc.ListRoles()
	for _, item := range roles {
		if item == role {
			t.Fatalf("deleted role still listed")
		}
	}
}

func TestRoleErrors(t *testing.T) {
	svc := newTestService(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	cases := []struct {
		name string
		err  error
		want error
	}{
		{name: "empty role", err: svc.GrantRolePolicy("  ", "/admin/orders", "GET"), want: ErrRoleRequired},
		{name: "anchor", err: svc.DeleteRole("__anchor__"), want: ErrReservedRole},
		{name: "builtin", err: svc.DeleteRole("support"), want: ErrImmutableRole},
		{name: "no action", err: svc.GrantRolePolicy("ops", "/admin/orders", " "), want: ErrActionRequired},
		{name: "no admin", err: svc.SetAdminRoles(0, []string{"ops"}), want: ErrAdminRequired},
	}
	for _, tc := range cases {
		if !errors.Is(tc.err, tc.want) {
			t.Fatalf("%s: want %v got %v", tc.name, tc.want, tc.err)
		}
	}

	var nilSvc *Service
	if _, err := nilSvc.EnforceAdmin(1, "/admin/orders", "GET"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("nil service should be unavailable, got %v", err)
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := map[string]string{
		"/api/v1/admin/orders/:id": "/admin/orders/:id",
		"/admin/orders/:id":        "/admin/orders/:id",
		"admin/orders":             "/admin/orders",
		"/api/v1":                  "/",
		"":                         "/",
	}
	for in, want := range cases {
		if got := NormalizeObject(in); got != want {
			t.Fatalf("normalize %q want %q got %q", in, want, got)
		}
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := newTestService(t)
	for i := 0; i < 2; i++ {
		if err := svc.BootstrapBuiltinRoles(); err != nil {
			t.Fatalf("bootstrap round %d failed: %v", i, err)
		}
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	want := map[string]bool{"role:readonly_auditor": true, "role:catalog_manager": true, "role:support": true}
	for _, role := range roles {
		delete(want, role)
	}
	if len(want) != 0 {
		t.Fatalf("builtin roles missing: %v", want)
	}

	if err := svc.SetAdminRoles(3, []string{"catalog_manager"}); err != nil {
		t.Fatalf("set catalog_manager failed: %v", err)
	}
	if err := svc.SetAdminRoles(4, []string{"support"}); err != nil {
		t.Fatalf("set support failed: %v", err)
	}
	assertAccess(t, svc, []access{
		{admin: 3, object: "/admin/tickets", action: "GET", want: true},
		{admin: 3, object: "/admin/tickets/9", action: "PATCH", want: false},
		{admin: 3, object: "/api/v1/admin/products/12", action: "PUT", want: true},
		{admin: 3, object: "/api/v1/admin/custom-requests/5/quote", action: "POST", want: true},
		{admin: 4, object: "/api/v1/admin/orders/FM20261017120000123456", action: "PATCH", want: true},
		{admin: 4, object: "/api/v1/admin/products", action: "POST", want: false},
		{admin: 4, object: "/api/v1/admin/users/batch-status", action: "PUT", want: true},
	})
}
